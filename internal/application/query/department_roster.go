package query

import (
	"context"
	"fmt"

	"github.com/alem-hub/student-directory/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// DEPARTMENT ROSTER QUERY
// Списки факультетов: старшие курсы первыми, при равном курсе - по ID.
// ══════════════════════════════════════════════════════════════════════════════

// DepartmentRosterQuery содержит параметры запроса.
type DepartmentRosterQuery struct {
	// Department - факультет. Пустое значение - все факультеты по порядку.
	Department string
}

// DepartmentRosterDTO - список одного факультета.
type DepartmentRosterDTO struct {
	Department string       `json:"department"`
	Students   []StudentDTO `json:"students"`
}

// DepartmentRosterHandler обрабатывает запрос списков факультетов.
type DepartmentRosterHandler struct {
	directory student.Directory
}

// NewDepartmentRosterHandler создаёт новый обработчик.
func NewDepartmentRosterHandler(directory student.Directory) *DepartmentRosterHandler {
	return &DepartmentRosterHandler{directory: directory}
}

// Handle выполняет запрос. Неизвестный факультет - ErrInvalidCategory.
func (h *DepartmentRosterHandler) Handle(ctx context.Context, q DepartmentRosterQuery) ([]DepartmentRosterDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	depts := student.AllDepartments()
	if q.Department != "" {
		dept, err := student.ParseDepartment(q.Department)
		if err != nil {
			return nil, err
		}
		depts = []student.Department{dept}
	}

	rosters := make([]DepartmentRosterDTO, 0, len(depts))
	for _, dept := range depts {
		seq, ok := h.directory.ListByDepartment(dept)
		if !ok {
			return nil, student.ErrInvalidCategory.WithDetail(fmt.Errorf("department %q", dept))
		}
		rosters = append(rosters, DepartmentRosterDTO{
			Department: dept.String(),
			Students:   collect(seq, 0),
		})
	}
	return rosters, nil
}
