package query

import (
	"context"
	"fmt"

	"github.com/alem-hub/student-directory/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT QUERY
// Получает одного студента по ID за O(1).
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentQuery содержит параметры запроса.
type GetStudentQuery struct {
	ID student.ID
}

// GetStudentHandler обрабатывает запрос студента.
type GetStudentHandler struct {
	directory student.Directory
}

// NewGetStudentHandler создаёт новый обработчик.
func NewGetStudentHandler(directory student.Directory) *GetStudentHandler {
	return &GetStudentHandler{directory: directory}
}

// Handle выполняет запрос. Отсутствие студента - ErrStudentNotFound.
func (h *GetStudentHandler) Handle(ctx context.Context, q GetStudentQuery) (*StudentDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, ok := h.directory.Get(q.ID)
	if !ok {
		return nil, student.ErrStudentNotFound.WithDetail(fmt.Errorf("id %d", q.ID))
	}

	dto := NewStudentDTO(s)
	return &dto, nil
}
