package student

import (
	"context"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// IMPORT PORT
// Контракт внешнего табличного источника для массового импорта.
// Реализация (CSV) находится в infrastructure/importer.
// ══════════════════════════════════════════════════════════════════════════════

// RawRow - строка источника в текстовом виде, до разбора.
type RawRow struct {
	// Line - номер строки в источнике (с единицы, включая заголовок).
	Line int

	ID         string
	Name       string
	GPA        string
	ClassYear  string
	Major      string
	Department string
}

// RowSource открывает источник строк.
type RowSource interface {
	// Name возвращает имя источника для отчётов и логов.
	Name() string

	// Open открывает источник. Если источник нельзя открыть или прочитать
	// заголовок, возвращает ошибку, совместимую с shared.ErrSourceUnavailable.
	Open(ctx context.Context) (RowReader, error)
}

// RowReader отдаёт строки открытого источника.
type RowReader interface {
	// Rows возвращает строки по порядку. Ошибка строки не прерывает
	// последовательность; ошибка чтения самого источника, совместимая с
	// shared.ErrSourceRead, отдаётся последней и завершает её.
	Rows() iter.Seq2[RawRow, error]

	// Close освобождает источник.
	Close() error
}

// ParseRow разбирает текстовую строку в параметры создания студента.
// Каждое поле проверяется сразу после разбора по правилам NewStudent и в
// его порядке (id, имя, балл, курс, специальность, факультет), поэтому
// строка отклоняется той же ошибкой, что вернул бы NewStudent.
func ParseRow(row RawRow) (NewStudentParams, error) {
	var s Student

	steps := []struct {
		field string
		parse func() error
	}{
		{"ID", func() (err error) {
			s.ID, err = ParseID(row.ID)
			return err
		}},
		{"Name", func() error {
			s.Name = strings.TrimSpace(row.Name)
			return nil
		}},
		{"GPA", func() (err error) {
			s.GPA, err = strconv.ParseFloat(strings.TrimSpace(row.GPA), 64)
			if err != nil {
				return ErrInvalidGPA.WithDetail(fmt.Errorf("parse %q: %w", row.GPA, err))
			}
			return nil
		}},
		{"ClassYear", func() (err error) {
			s.ClassYear, err = ParseClassYear(row.ClassYear)
			return err
		}},
		{"Major", func() error {
			s.Major = strings.TrimSpace(row.Major)
			return nil
		}},
		{"Department", func() (err error) {
			s.Department, err = ParseDepartment(row.Department)
			return err
		}},
	}

	for _, step := range steps {
		if err := step.parse(); err != nil {
			return NewStudentParams{}, err
		}
		if err := s.validateField(step.field); err != nil {
			return NewStudentParams{}, err
		}
	}

	return NewStudentParams{
		ID:         s.ID,
		Name:       s.Name,
		GPA:        s.GPA,
		ClassYear:  s.ClassYear,
		Major:      s.Major,
		Department: s.Department,
	}, nil
}
