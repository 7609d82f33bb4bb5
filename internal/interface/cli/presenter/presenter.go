// Package presenter renders directory query results for the command line.
//
// Two renderings exist: text, which keeps the line layout of the classic
// directory printout, and json, which writes one response object per call.
package presenter

import (
	"fmt"
	"io"

	"github.com/alem-hub/student-directory/internal/application/command"
	"github.com/alem-hub/student-directory/internal/application/query"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{FormatText, FormatJSON}

// Presenter writes command output.
type Presenter interface {
	// Heading introduces a section of output.
	Heading(title string) error

	// Message writes a single informational line.
	Message(text string) error

	// Departments writes department rosters in the order given.
	Departments(rosters []query.DepartmentRosterDTO) error

	// Students writes the full student list.
	Students(list *query.StudentListDTO) error

	// ImportReport writes the outcome of a bulk import.
	ImportReport(report *command.ImportReport) error

	// Error writes a failure with a short machine-readable code.
	Error(code, message string) error
}

// New returns the presenter for format writing to w.
func New(format string, w io.Writer) (Presenter, error) {
	switch format {
	case FormatText:
		return NewText(w), nil
	case FormatJSON:
		return NewJSON(w), nil
	default:
		return nil, fmt.Errorf("invalid format %q: must be one of %v", format, ValidFormats)
	}
}

// IsValidFormat reports whether format is one of ValidFormats.
func IsValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
