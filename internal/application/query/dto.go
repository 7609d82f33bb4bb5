// Package query contains read operations (CQRS - Queries).
package query

import (
	"iter"

	"github.com/alem-hub/student-directory/internal/domain/student"
)

// StudentDTO - DTO студента для слоя представления.
type StudentDTO struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	GPA        float64 `json:"gpa"`
	ClassYear  string  `json:"class_year"`
	Major      string  `json:"major"`
	Department string  `json:"department"`
}

// NewStudentDTO преобразует доменную запись в DTO.
func NewStudentDTO(s student.Student) StudentDTO {
	return StudentDTO{
		ID:         int64(s.ID),
		Name:       s.Name,
		GPA:        s.GPA,
		ClassYear:  s.ClassYear.String(),
		Major:      s.Major,
		Department: s.Department.String(),
	}
}

// collect материализует последовательность, останавливаясь на limit (0 = без ограничения).
func collect(seq iter.Seq[student.Student], limit int) []StudentDTO {
	out := make([]StudentDTO, 0)
	for s := range seq {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, NewStudentDTO(s))
	}
	return out
}
