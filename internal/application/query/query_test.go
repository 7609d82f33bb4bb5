package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-directory/internal/domain/student"
	"github.com/alem-hub/student-directory/internal/infrastructure/persistence/memory"
)

func seededDirectory(t *testing.T) *memory.Directory {
	t.Helper()

	dir := memory.NewDirectory(memory.Options{})
	for _, p := range []student.NewStudentParams{
		{ID: 1101, Name: "John Doe", GPA: 3.8, ClassYear: student.ClassYearSenior, Major: "CS", Department: student.DepartmentMathematicalStudies},
		{ID: 1102, Name: "Jane Smith", GPA: 3.9, ClassYear: student.ClassYearJunior, Major: "Mathematics", Department: student.DepartmentMathematicalStudies},
		{ID: 1003, Name: "Cara Lee", GPA: 2.9, ClassYear: student.ClassYearFreshman, Major: "History", Department: student.DepartmentHumanities},
		{ID: 1002, Name: "Bob Stone", GPA: 3.1, ClassYear: student.ClassYearSenior, Major: "Statistics", Department: student.DepartmentMathematicalStudies},
	} {
		_, err := dir.Add(p)
		require.NoError(t, err)
	}
	return dir
}

func TestGetStudentHandler(t *testing.T) {
	h := NewGetStudentHandler(seededDirectory(t))

	dto, err := h.Handle(context.Background(), GetStudentQuery{ID: 1102})
	require.NoError(t, err)
	assert.Equal(t, StudentDTO{
		ID: 1102, Name: "Jane Smith", GPA: 3.9, ClassYear: "Junior",
		Major: "Mathematics", Department: "Mathematical Studies",
	}, *dto)

	_, err = h.Handle(context.Background(), GetStudentQuery{ID: 1})
	assert.ErrorIs(t, err, student.ErrStudentNotFound)
}

func TestListStudentsHandler(t *testing.T) {
	h := NewListStudentsHandler(seededDirectory(t))

	res, err := h.Handle(context.Background(), ListStudentsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	require.Len(t, res.Students, 4)

	ids := make([]int64, 0, len(res.Students))
	for _, s := range res.Students {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{1101, 1102, 1003, 1002}, ids)

	res, err = h.Handle(context.Background(), ListStudentsQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Students, 2)
	assert.Equal(t, 4, res.Total)

	_, err = h.Handle(context.Background(), ListStudentsQuery{Limit: -1})
	assert.Error(t, err)
}

func TestDepartmentRosterHandler_All(t *testing.T) {
	h := NewDepartmentRosterHandler(seededDirectory(t))

	rosters, err := h.Handle(context.Background(), DepartmentRosterQuery{})
	require.NoError(t, err)
	require.Len(t, rosters, 4)

	names := make([]string, 0, len(rosters))
	for _, r := range rosters {
		names = append(names, r.Department)
	}
	assert.Equal(t, []string{"Humanities", "Natural Sciences", "Mathematical Studies", "Social Sciences"}, names)

	assert.Empty(t, rosters[1].Students)

	math := rosters[2].Students
	require.Len(t, math, 3)
	assert.Equal(t, int64(1002), math[0].ID)
	assert.Equal(t, int64(1101), math[1].ID)
	assert.Equal(t, int64(1102), math[2].ID)
}

func TestDepartmentRosterHandler_Single(t *testing.T) {
	h := NewDepartmentRosterHandler(seededDirectory(t))

	rosters, err := h.Handle(context.Background(), DepartmentRosterQuery{Department: "humanities"})
	require.NoError(t, err)
	require.Len(t, rosters, 1)
	assert.Equal(t, "Humanities", rosters[0].Department)
	require.Len(t, rosters[0].Students, 1)
	assert.Equal(t, int64(1003), rosters[0].Students[0].ID)

	_, err = h.Handle(context.Background(), DepartmentRosterQuery{Department: "Engineering"})
	assert.ErrorIs(t, err, student.ErrInvalidCategory)
}
