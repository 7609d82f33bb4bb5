package presenter

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-directory/internal/application/command"
	"github.com/alem-hub/student-directory/internal/application/query"
)

var (
	johnDoe = query.StudentDTO{
		ID: 1101, Name: "John Doe", GPA: 3.8, ClassYear: "Senior",
		Major: "Computer Science", Department: "Mathematical Studies",
	}
	janeSmith = query.StudentDTO{
		ID: 1102, Name: "Jane Smith", GPA: 3.9, ClassYear: "Junior",
		Major: "Mathematics", Department: "Mathematical Studies",
	}
)

func fixtureRosters() []query.DepartmentRosterDTO {
	return []query.DepartmentRosterDTO{
		{Department: "Humanities", Students: []query.StudentDTO{}},
		{Department: "Mathematical Studies", Students: []query.StudentDTO{johnDoe, janeSmith}},
	}
}

func fixtureReport() *command.ImportReport {
	return &command.ImportReport{
		BatchID:   "batch-1",
		Source:    "students.csv",
		Succeeded: 3,
		Failed:    2,
		Failures: []command.RowFailure{
			{Line: 4, ID: "1002", Err: errors.New("student id already exists")},
			{Line: 6, Err: errors.New("malformed row")},
		},
		Duration: 1500 * time.Millisecond,
	}
}

// renderSession drives a presenter through the output of a typical demo run.
func renderSession(t *testing.T, p Presenter) {
	t.Helper()
	require.NoError(t, p.Heading("Department-wise Student List"))
	require.NoError(t, p.Departments(fixtureRosters()))
	require.NoError(t, p.Message("\nUpdating student 1002 from Junior to Senior..."))
	require.NoError(t, p.Students(&query.StudentListDTO{Students: []query.StudentDTO{johnDoe, janeSmith}, Total: 2}))
	require.NoError(t, p.ImportReport(fixtureReport()))
	require.NoError(t, p.Error("not_found", "student not found"))
}

func TestPresenters_Golden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))

	for _, format := range ValidFormats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			p, err := New(format, &buf)
			require.NoError(t, err)

			renderSession(t, p)
			g.Assert(t, "session_"+format, buf.Bytes())
		})
	}
}

func TestText_EmptyResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewText(&buf)

	require.NoError(t, p.Students(&query.StudentListDTO{}))
	require.NoError(t, p.Departments([]query.DepartmentRosterDTO{{Department: "Social Sciences"}}))
	require.NoError(t, p.ImportReport(&command.ImportReport{}))

	assert.Equal(t,
		"\n=== Complete Student List ===\n"+
			"No students in the system.\n"+
			"\nSocial Sciences Department Students:\n"+
			"No students in this department.\n"+
			"Successfully uploaded 0 students to the database.\n",
		buf.String())
}

func TestText_TruncatedOutputsSayHowMuchIsHidden(t *testing.T) {
	var buf bytes.Buffer
	p := NewText(&buf)

	require.NoError(t, p.Students(&query.StudentListDTO{Students: []query.StudentDTO{johnDoe}, Total: 3}))
	report := fixtureReport()
	report.Failed = 5
	require.NoError(t, p.ImportReport(report))

	assert.Contains(t, buf.String(), "... 2 more\n")
	assert.Contains(t, buf.String(), "  ... 3 more\n")
}

func TestJSON_NilInputsEncodeAsEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := NewJSON(&buf)

	require.NoError(t, p.Students(nil))
	require.NoError(t, p.Departments(nil))
	require.NoError(t, p.Heading("ignored"))

	assert.Equal(t,
		`{"status":"ok","kind":"students","data":{"students":[],"total":0}}`+"\n"+
			`{"status":"ok","kind":"departments","data":[]}`+"\n",
		buf.String())
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	_, err := New("yaml", &bytes.Buffer{})
	assert.ErrorContains(t, err, `invalid format "yaml"`)
	assert.False(t, IsValidFormat("yaml"))
	assert.True(t, IsValidFormat(FormatJSON))
}
