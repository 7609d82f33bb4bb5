package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassYear(t *testing.T) {
	year, err := ParseClassYear(" senior ")
	require.NoError(t, err)
	assert.Equal(t, ClassYearSenior, year)
	assert.True(t, year > ClassYearJunior)

	_, err = ParseClassYear("Graduate")
	assert.ErrorIs(t, err, ErrInvalidRank)
}

func TestParseDepartment(t *testing.T) {
	dept, err := ParseDepartment("natural sciences")
	require.NoError(t, err)
	assert.Equal(t, DepartmentNaturalSciences, dept)

	_, err = ParseDepartment("Engineering")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("1101")
	require.NoError(t, err)
	assert.Equal(t, ID(1101), id)

	_, err = ParseID("11x")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestStudent_RanksBefore(t *testing.T) {
	senior10 := &Student{ID: 10, ClassYear: ClassYearSenior}
	senior11 := &Student{ID: 11, ClassYear: ClassYearSenior}
	freshman2 := &Student{ID: 2, ClassYear: ClassYearFreshman}

	assert.True(t, senior10.RanksBefore(senior11))
	assert.False(t, senior11.RanksBefore(senior10))
	assert.True(t, senior11.RanksBefore(freshman2))
	assert.False(t, freshman2.RanksBefore(senior10))
}

func TestStudent_String(t *testing.T) {
	s := &Student{
		ID:         1101,
		Name:       "John Doe",
		GPA:        3.8,
		ClassYear:  ClassYearSenior,
		Major:      "Computer Science",
		Department: DepartmentMathematicalStudies,
	}

	assert.Equal(t,
		"ID: 1101, Name: John Doe, Year: Senior, Major: Computer Science, Department: Mathematical Studies, GPA: 3.8",
		s.String(),
	)
}

func TestFormatGPA(t *testing.T) {
	tests := []struct {
		gpa  float64
		want string
	}{
		{3.8, "3.8"},
		{4, "4.0"},
		{0, "0.0"},
		{3.25, "3.25"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatGPA(tt.gpa))
	}
}

func TestUpdateParams(t *testing.T) {
	base := Student{ID: 1, Name: "Alice", GPA: 3.5, ClassYear: ClassYearJunior, Major: "CS", Department: DepartmentHumanities}

	empty := UpdateParams{}
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.AffectsOrder())
	assert.Equal(t, base, empty.ApplyTo(base))

	params := UpdateParams{GPA: Some(0.0), ClassYear: Some(ClassYearSenior)}
	assert.False(t, params.IsEmpty())
	assert.True(t, params.AffectsOrder())
	assert.Equal(t, []string{"gpa", "class_year"}, params.Fields())

	merged := params.ApplyTo(base)
	assert.Equal(t, 0.0, merged.GPA)
	assert.Equal(t, ClassYearSenior, merged.ClassYear)
	assert.Equal(t, "Alice", merged.Name)
	assert.Equal(t, 3.5, base.GPA, "ApplyTo must not modify its input")

	v, ok := params.GPA.Get()
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
	_, ok = params.Name.Get()
	assert.False(t, ok)
}
