package presenter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/alem-hub/student-directory/internal/application/command"
	"github.com/alem-hub/student-directory/internal/application/query"
	"github.com/alem-hub/student-directory/internal/domain/student"
)

// Text renders the human-readable listing.
type Text struct {
	w io.Writer
}

var _ Presenter = (*Text)(nil)

// NewText creates a text presenter.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Heading writes "=== title ===" preceded by a blank line.
func (p *Text) Heading(title string) error {
	_, err := fmt.Fprintf(p.w, "\n=== %s ===\n", title)
	return err
}

// Message writes text on its own line.
func (p *Text) Message(text string) error {
	_, err := fmt.Fprintln(p.w, text)
	return err
}

// Departments writes each roster as a titled block of short student lines.
func (p *Text) Departments(rosters []query.DepartmentRosterDTO) error {
	bw := bufio.NewWriter(p.w)
	for _, r := range rosters {
		fmt.Fprintf(bw, "\n%s Department Students:\n", r.Department)
		if len(r.Students) == 0 {
			fmt.Fprintln(bw, "No students in this department.")
			continue
		}
		for _, s := range r.Students {
			fmt.Fprintf(bw, "ID: %d, Name: %s, Year: %s\n", s.ID, s.Name, s.ClassYear)
		}
	}
	return bw.Flush()
}

// Students writes the complete list with every field.
func (p *Text) Students(list *query.StudentListDTO) error {
	bw := bufio.NewWriter(p.w)
	fmt.Fprint(bw, "\n=== Complete Student List ===\n")
	if list == nil || len(list.Students) == 0 {
		fmt.Fprintln(bw, "No students in the system.")
		return bw.Flush()
	}
	for _, s := range list.Students {
		fmt.Fprintf(bw, "ID: %d, Name: %s, Year: %s, Major: %s, Department: %s, GPA: %s\n",
			s.ID, s.Name, s.ClassYear, s.Major, s.Department, student.FormatGPA(s.GPA))
	}
	if list.Total > len(list.Students) {
		fmt.Fprintf(bw, "... %d more\n", list.Total-len(list.Students))
	}
	return bw.Flush()
}

// ImportReport writes the success and failure counts, then one line per
// reported failure.
func (p *Text) ImportReport(report *command.ImportReport) error {
	bw := bufio.NewWriter(p.w)
	fmt.Fprintf(bw, "Successfully uploaded %d students to the database.\n", report.Succeeded)
	if report.Failed > 0 {
		fmt.Fprintf(bw, "Failed to upload %d students to the database.\n", report.Failed)
		for _, f := range report.Failures {
			if f.ID != "" {
				fmt.Fprintf(bw, "  line %d (id %s): %v\n", f.Line, f.ID, f.Err)
			} else {
				fmt.Fprintf(bw, "  line %d: %v\n", f.Line, f.Err)
			}
		}
		if hidden := report.Failed - len(report.Failures); hidden > 0 {
			fmt.Fprintf(bw, "  ... %d more\n", hidden)
		}
	}
	return bw.Flush()
}

// Error writes "Error [code]: message".
func (p *Text) Error(code, message string) error {
	_, err := fmt.Fprintf(p.w, "Error [%s]: %s\n", code, message)
	return err
}
