package student

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alem-hub/student-directory/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// studentValidate - общий экземпляр валидатора со своими правилами.
var studentValidate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("classyear", func(fl validator.FieldLevel) bool {
		return ClassYear(fl.Field().Int()).IsValid()
	})
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return Department(fl.Field().String()).IsValid()
	})

	return v
}

// fieldErrors связывает поле структуры с доменной ошибкой.
var fieldErrors = map[string]*shared.DomainError{
	"ID":         ErrInvalidID,
	"Name":       ErrInvalidName,
	"GPA":        ErrInvalidGPA,
	"ClassYear":  ErrInvalidRank,
	"Major":      ErrInvalidSubcategory,
	"Department": ErrInvalidCategory,
}

// NewStudentParams содержит параметры для создания нового студента.
type NewStudentParams struct {
	ID         ID
	Name       string
	GPA        float64
	ClassYear  ClassYear
	Major      string
	Department Department
}

// NewStudent создаёт нового студента с валидацией всех полей.
// Проверки идут в порядке полей; возвращается первая найденная ошибка.
func NewStudent(params NewStudentParams) (*Student, error) {
	s := &Student{
		ID:         params.ID,
		Name:       params.Name,
		GPA:        params.GPA,
		ClassYear:  params.ClassYear,
		Major:      params.Major,
		Department: params.Department,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate проверяет все поля студента.
func (s *Student) Validate() error {
	return fieldError(studentValidate.Struct(s))
}

// validateField проверяет одно поле по тем же правилам, что и Validate.
func (s *Student) validateField(field string) error {
	return fieldError(studentValidate.StructPartial(s, field))
}

// fieldError переводит первую ошибку валидатора в доменную.
func fieldError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if domainErr, ok := fieldErrors[fe.StructField()]; ok {
			return domainErr.WithDetail(
				fmt.Errorf("field %s rejected by %q rule (value %v)", fe.StructField(), fe.Tag(), fe.Value()),
			)
		}
	}

	return shared.WrapError("student", "Validate", shared.ErrValidation, "validation failed", err)
}
