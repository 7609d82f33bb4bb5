// Package student содержит доменную модель студента и контракт справочника.
package student

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alem-hub/student-directory/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// ID представляет уникальный идентификатор студента.
type ID int64

// IsValid проверяет, что ID положительный.
func (id ID) IsValid() bool {
	return id > 0
}

// String возвращает строковое представление ID.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID разбирает ID из текста (например, из CSV).
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrInvalidID.WithDetail(err)
	}
	return ID(n), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// ClassYear определяет курс студента. Числовое значение - это ранг,
// по которому сортируются списки факультетов (старшие курсы первыми).
type ClassYear int

const (
	// ClassYearFreshman - первый курс.
	ClassYearFreshman ClassYear = iota + 1
	// ClassYearSophomore - второй курс.
	ClassYearSophomore
	// ClassYearJunior - третий курс.
	ClassYearJunior
	// ClassYearSenior - четвёртый курс.
	ClassYearSenior
)

var classYearNames = map[ClassYear]string{
	ClassYearFreshman:  "Freshman",
	ClassYearSophomore: "Sophomore",
	ClassYearJunior:    "Junior",
	ClassYearSenior:    "Senior",
}

// AllClassYears возвращает все курсы по возрастанию ранга.
func AllClassYears() []ClassYear {
	return []ClassYear{ClassYearFreshman, ClassYearSophomore, ClassYearJunior, ClassYearSenior}
}

// IsValid проверяет, что курс корректен.
func (c ClassYear) IsValid() bool {
	_, ok := classYearNames[c]
	return ok
}

// String возвращает название курса.
func (c ClassYear) String() string {
	if name, ok := classYearNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ClassYear(%d)", int(c))
}

// ParseClassYear разбирает название курса без учёта регистра.
func ParseClassYear(s string) (ClassYear, error) {
	s = strings.TrimSpace(s)
	for _, c := range AllClassYears() {
		if strings.EqualFold(classYearNames[c], s) {
			return c, nil
		}
	}
	return 0, ErrInvalidRank.WithDetail(fmt.Errorf("unknown class year %q", s))
}

// Department определяет факультет студента.
type Department string

const (
	// DepartmentHumanities - гуманитарные науки.
	DepartmentHumanities Department = "Humanities"
	// DepartmentNaturalSciences - естественные науки.
	DepartmentNaturalSciences Department = "Natural Sciences"
	// DepartmentMathematicalStudies - математические науки.
	DepartmentMathematicalStudies Department = "Mathematical Studies"
	// DepartmentSocialSciences - общественные науки.
	DepartmentSocialSciences Department = "Social Sciences"
)

// AllDepartments возвращает фиксированный набор факультетов в порядке отображения.
func AllDepartments() []Department {
	return []Department{
		DepartmentHumanities,
		DepartmentNaturalSciences,
		DepartmentMathematicalStudies,
		DepartmentSocialSciences,
	}
}

// IsValid проверяет, что факультет входит в фиксированный набор.
func (d Department) IsValid() bool {
	switch d {
	case DepartmentHumanities, DepartmentNaturalSciences, DepartmentMathematicalStudies, DepartmentSocialSciences:
		return true
	default:
		return false
	}
}

// String возвращает название факультета.
func (d Department) String() string {
	return string(d)
}

// ParseDepartment разбирает название факультета без учёта регистра.
func ParseDepartment(s string) (Department, error) {
	s = strings.TrimSpace(s)
	for _, d := range AllDepartments() {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", ErrInvalidCategory.WithDetail(fmt.Errorf("unknown department %q", s))
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student - запись о студенте. Все поля проходят валидацию при создании
// и при каждом обновлении, поэтому невалидная запись в справочник не попадает.
type Student struct {
	// ID - уникальный идентификатор, не меняется после создания.
	ID ID `json:"id" validate:"gt=0"`

	// Name - имя студента.
	Name string `json:"name" validate:"notblank"`

	// GPA - средний балл, от 0.0 до 4.0 включительно.
	GPA float64 `json:"gpa" validate:"gte=0,lte=4"`

	// ClassYear - курс (ранг для сортировки).
	ClassYear ClassYear `json:"class_year" validate:"classyear"`

	// Major - специальность, свободный текст.
	Major string `json:"major" validate:"notblank"`

	// Department - факультет, определяет список, в котором стоит студент.
	Department Department `json:"department" validate:"department"`
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidID - невалидный ID студента.
	ErrInvalidID = shared.NewDomainError("student", "Validate", shared.ErrInvalidID,
		"student id must be a positive integer")

	// ErrInvalidName - пустое имя.
	ErrInvalidName = shared.NewDomainError("student", "Validate", shared.ErrEmptyValue,
		"name must be a non-empty string")

	// ErrInvalidGPA - средний балл вне диапазона.
	ErrInvalidGPA = shared.NewDomainError("student", "Validate", shared.ErrValueOutOfRange,
		"gpa must be a number between 0 and 4.0")

	// ErrInvalidRank - неизвестный курс.
	ErrInvalidRank = shared.NewDomainError("student", "Validate", shared.ErrInvalidInput,
		"class year must be one of: Freshman, Sophomore, Junior, Senior")

	// ErrInvalidSubcategory - пустая специальность.
	ErrInvalidSubcategory = shared.NewDomainError("student", "Validate", shared.ErrEmptyValue,
		"major must be a non-empty string")

	// ErrInvalidCategory - неизвестный факультет.
	ErrInvalidCategory = shared.NewDomainError("student", "Validate", shared.ErrInvalidInput,
		"department must be one of: Humanities, Natural Sciences, Mathematical Studies, Social Sciences")

	// ErrDuplicateID - студент с таким ID уже есть.
	ErrDuplicateID = shared.NewDomainError("student", "Add", shared.ErrAlreadyExists,
		"student id already exists")

	// ErrStudentNotFound - студент не найден.
	ErrStudentNotFound = shared.NewDomainError("student", "Find", shared.ErrNotFound,
		"student not found")
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS
// ══════════════════════════════════════════════════════════════════════════════

// RanksBefore сообщает, стоит ли s раньше other в списке факультета:
// сначала по курсу по убыванию, при равном курсе - по ID по возрастанию.
func (s *Student) RanksBefore(other *Student) bool {
	if s.ClassYear != other.ClassYear {
		return s.ClassYear > other.ClassYear
	}
	return s.ID < other.ID
}

// String возвращает строковое представление студента.
func (s *Student) String() string {
	return fmt.Sprintf(
		"ID: %d, Name: %s, Year: %s, Major: %s, Department: %s, GPA: %s",
		s.ID, s.Name, s.ClassYear, s.Major, s.Department, FormatGPA(s.GPA),
	)
}

// FormatGPA форматирует средний балл кратчайшей записью, сохраняя
// дробную часть у целых значений: 3.8, 4.0.
func FormatGPA(gpa float64) string {
	text := strconv.FormatFloat(gpa, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}
