package presenter

import (
	"encoding/json"
	"io"

	"github.com/alem-hub/student-directory/internal/application/command"
	"github.com/alem-hub/student-directory/internal/application/query"
)

// Response is the JSON envelope written for every call.
type Response struct {
	Status string         `json:"status"`          // "ok" or "error"
	Kind   string         `json:"kind,omitempty"`  // payload type
	Data   any            `json:"data,omitempty"`  // success payload
	Error  *ResponseError `json:"error,omitempty"` // error details
}

// ResponseError is the error body of a Response.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes one Response per line.
type JSON struct {
	enc *json.Encoder
}

var _ Presenter = (*JSON)(nil)

// NewJSON creates a JSON presenter.
func NewJSON(w io.Writer) *JSON {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSON{enc: enc}
}

func (p *JSON) ok(kind string, data any) error {
	return p.enc.Encode(Response{Status: "ok", Kind: kind, Data: data})
}

// Heading is a text-only decoration and writes nothing.
func (p *JSON) Heading(string) error {
	return nil
}

// Message writes {"kind":"message","data":{"text":...}}.
func (p *JSON) Message(text string) error {
	return p.ok("message", map[string]string{"text": text})
}

// Departments writes the rosters as one response.
func (p *JSON) Departments(rosters []query.DepartmentRosterDTO) error {
	if rosters == nil {
		rosters = []query.DepartmentRosterDTO{}
	}
	return p.ok("departments", rosters)
}

// Students writes the full list.
func (p *JSON) Students(list *query.StudentListDTO) error {
	if list == nil {
		list = &query.StudentListDTO{Students: []query.StudentDTO{}}
	}
	return p.ok("students", list)
}

type rowFailureView struct {
	Line  int    `json:"line"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

type importReportView struct {
	BatchID    string           `json:"batch_id"`
	Source     string           `json:"source"`
	Succeeded  int              `json:"succeeded"`
	Failed     int              `json:"failed"`
	Failures   []rowFailureView `json:"failures"`
	DurationMS int64            `json:"duration_ms"`
}

// ImportReport writes the report with failures rendered as strings.
func (p *JSON) ImportReport(report *command.ImportReport) error {
	view := importReportView{
		BatchID:    report.BatchID,
		Source:     report.Source,
		Succeeded:  report.Succeeded,
		Failed:     report.Failed,
		Failures:   make([]rowFailureView, 0, len(report.Failures)),
		DurationMS: report.Duration.Milliseconds(),
	}
	for _, f := range report.Failures {
		view.Failures = append(view.Failures, rowFailureView{Line: f.Line, ID: f.ID, Error: f.Err.Error()})
	}
	return p.ok("import_report", view)
}

// Error writes an error response.
func (p *JSON) Error(code, message string) error {
	return p.enc.Encode(Response{
		Status: "error",
		Error:  &ResponseError{Code: code, Message: message},
	})
}
