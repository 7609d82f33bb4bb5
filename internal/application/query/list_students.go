package query

import (
	"context"
	"errors"

	"github.com/alem-hub/student-directory/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// Список всех студентов в порядке добавления.
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentsQuery содержит параметры запроса.
type ListStudentsQuery struct {
	// Limit - максимальное количество записей (0 = все).
	Limit int
}

// Validate проверяет корректность параметров запроса.
func (q ListStudentsQuery) Validate() error {
	if q.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	return nil
}

// StudentListDTO - результат запроса.
type StudentListDTO struct {
	// Students - студенты в порядке добавления.
	Students []StudentDTO `json:"students"`

	// Total - общее количество студентов в справочнике.
	Total int `json:"total"`
}

// ListStudentsHandler обрабатывает запрос списка.
type ListStudentsHandler struct {
	directory student.Directory
}

// NewListStudentsHandler создаёт новый обработчик.
func NewListStudentsHandler(directory student.Directory) *ListStudentsHandler {
	return &ListStudentsHandler{directory: directory}
}

// Handle выполняет запрос.
func (h *ListStudentsHandler) Handle(ctx context.Context, q ListStudentsQuery) (*StudentListDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &StudentListDTO{
		Students: collect(h.directory.ListAll(), q.Limit),
		Total:    h.directory.Len(),
	}, nil
}
