package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRow(t *testing.T) {
	params, err := ParseRow(RawRow{
		Line:       2,
		ID:         " 1001 ",
		Name:       " Alice ",
		GPA:        "3.70",
		ClassYear:  "junior",
		Major:      "Physics",
		Department: "natural sciences",
	})
	require.NoError(t, err)

	assert.Equal(t, NewStudentParams{
		ID:         1001,
		Name:       "Alice",
		GPA:        3.7,
		ClassYear:  ClassYearJunior,
		Major:      "Physics",
		Department: DepartmentNaturalSciences,
	}, params)
}

func TestParseRow_Rejections(t *testing.T) {
	valid := RawRow{ID: "1", Name: "A", GPA: "3.0", ClassYear: "Senior", Major: "M", Department: "Humanities"}

	tests := []struct {
		name   string
		mutate func(r *RawRow)
		want   error
	}{
		{"non-numeric id", func(r *RawRow) { r.ID = "abc" }, ErrInvalidID},
		{"empty id", func(r *RawRow) { r.ID = "" }, ErrInvalidID},
		{"non-numeric gpa", func(r *RawRow) { r.GPA = "high" }, ErrInvalidGPA},
		{"unknown class year", func(r *RawRow) { r.ClassYear = "Graduate" }, ErrInvalidRank},
		{"unknown department", func(r *RawRow) { r.Department = "Engineering" }, ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := valid
			tt.mutate(&row)

			_, err := ParseRow(row)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseRow_RejectsInFieldOrder(t *testing.T) {
	tests := []struct {
		name string
		row  RawRow
		want error
	}{
		{
			"blank name before bad gpa",
			RawRow{ID: "4", Name: " ", GPA: "abc", ClassYear: "Senior", Major: "M", Department: "Humanities"},
			ErrInvalidName,
		},
		{
			"negative id before blank name",
			RawRow{ID: "-5", Name: "", GPA: "9", ClassYear: "Senior", Major: "M", Department: "Humanities"},
			ErrInvalidID,
		},
		{
			"gpa out of range before unknown class year",
			RawRow{ID: "4", Name: "A", GPA: "9", ClassYear: "Graduate", Major: "M", Department: "Humanities"},
			ErrInvalidGPA,
		},
		{
			"blank major before unknown department",
			RawRow{ID: "4", Name: "A", GPA: "3", ClassYear: "Senior", Major: "", Department: "Engineering"},
			ErrInvalidSubcategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRow(tt.row)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
