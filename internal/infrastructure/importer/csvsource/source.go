// Package csvsource reads student rows from CSV files for bulk import.
//
// The first row is a header. Columns are matched by name, case-insensitively:
//
//	student_id (or id), name, gpa, class_year (or categoryRank),
//	major (or subcategory), department (or category)
//
// Extra columns are ignored and column order is free.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/alem-hub/student-directory/internal/domain/shared"
	"github.com/alem-hub/student-directory/internal/domain/student"
)

// Column names.
const (
	ColumnID         = "student_id"
	ColumnName       = "name"
	ColumnGPA        = "gpa"
	ColumnClassYear  = "class_year"
	ColumnMajor      = "major"
	ColumnDepartment = "department"
)

var requiredColumns = []string{ColumnID, ColumnName, ColumnGPA, ColumnClassYear, ColumnMajor, ColumnDepartment}

var columnAliases = map[string]string{
	"id":           ColumnID,
	"categoryrank": ColumnClassYear,
	"subcategory":  ColumnMajor,
	"category":     ColumnDepartment,
}

// Options configures CSV parsing.
type Options struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune

	// Comment starts a comment line when non-zero.
	Comment rune
}

// DefaultOptions returns comma-separated parsing without comments.
func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

// Source is a student.RowSource backed by a CSV file or stream.
type Source struct {
	name string
	open func() (io.ReadCloser, error)
	opts Options
}

var _ student.RowSource = (*Source)(nil)

// NewFile creates a source reading the CSV file at path.
func NewFile(path string, opts Options) *Source {
	return &Source{
		name: filepath.Base(path),
		open: func() (io.ReadCloser, error) { return os.Open(path) },
		opts: opts,
	}
}

// NewReader creates a source over r. The stream can be opened once.
func NewReader(name string, r io.Reader, opts Options) *Source {
	used := false
	return &Source{
		name: name,
		open: func() (io.ReadCloser, error) {
			if used {
				return nil, errors.New("stream already consumed")
			}
			used = true
			return io.NopCloser(r), nil
		},
		opts: opts,
	}
}

// Name returns the source name.
func (s *Source) Name() string {
	return s.name
}

// Open opens the stream and reads the header. Any failure here is reported
// as shared.ErrSourceUnavailable.
func (s *Source) Open(ctx context.Context) (student.RowReader, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(s.name, err)
	}

	rc, err := s.open()
	if err != nil {
		return nil, unavailable(s.name, err)
	}

	r := csv.NewReader(rc)
	r.Comma = s.opts.Delimiter
	if r.Comma == 0 {
		r.Comma = ','
	}
	r.Comment = s.opts.Comment
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		_ = rc.Close()
		if errors.Is(err, io.EOF) {
			err = errors.New("empty file")
		}
		return nil, unavailable(s.name, fmt.Errorf("read header: %w", err))
	}

	columns, err := mapHeader(header)
	if err != nil {
		_ = rc.Close()
		return nil, unavailable(s.name, err)
	}

	return &rowReader{name: s.name, csv: r, closer: rc, columns: columns}, nil
}

func unavailable(name string, err error) error {
	return shared.ErrSourceUnavailable.WithDetail(fmt.Errorf("%s: %w", name, err))
}

// mapHeader returns the index of each required column.
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(requiredColumns))
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
		if canonical, ok := columnAliases[name]; ok {
			name = canonical
		}
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	missing := make([]string, 0)
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

// rowReader yields the data rows of an opened source.
type rowReader struct {
	name    string
	csv     *csv.Reader
	closer  io.Closer
	columns map[string]int
}

// Rows yields one RawRow per record. Malformed records are yielded with
// their parse error and reading continues; any other read error is yielded
// as shared.ErrSourceRead and ends the sequence.
func (r *rowReader) Rows() iter.Seq2[student.RawRow, error] {
	return func(yield func(student.RawRow, error) bool) {
		for {
			record, err := r.csv.Read()
			if errors.Is(err, io.EOF) {
				return
			}

			var parseErr *csv.ParseError
			switch {
			case errors.As(err, &parseErr):
				if !yield(student.RawRow{Line: parseErr.StartLine}, shared.WrapError(
					"import", "Read", shared.ErrInvalidFormat, "malformed row", err)) {
					return
				}
				continue
			case err != nil:
				yield(student.RawRow{}, shared.ErrSourceRead.WithDetail(fmt.Errorf("%s: %w", r.name, err)))
				return
			}

			line, _ := r.csv.FieldPos(0)
			row, err := r.toRow(line, record)
			if !yield(row, err) {
				return
			}
		}
	}
}

func (r *rowReader) toRow(line int, record []string) (student.RawRow, error) {
	field := func(col string) (string, bool) {
		i := r.columns[col]
		if i >= len(record) {
			return "", false
		}
		return record[i], true
	}

	row := student.RawRow{Line: line}
	missing := make([]string, 0)
	for _, col := range requiredColumns {
		v, ok := field(col)
		if !ok {
			missing = append(missing, col)
			continue
		}
		switch col {
		case ColumnID:
			row.ID = v
		case ColumnName:
			row.Name = v
		case ColumnGPA:
			row.GPA = v
		case ColumnClassYear:
			row.ClassYear = v
		case ColumnMajor:
			row.Major = v
		case ColumnDepartment:
			row.Department = v
		}
	}

	if len(missing) > 0 {
		return row, shared.NewDomainError("import", "Read", shared.ErrInvalidFormat,
			"row has too few fields").WithDetail(fmt.Errorf("missing %s", strings.Join(missing, ", ")))
	}
	return row, nil
}

// Close closes the underlying stream.
func (r *rowReader) Close() error {
	return r.closer.Close()
}
