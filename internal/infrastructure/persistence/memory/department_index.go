package memory

import (
	"fmt"
	"slices"

	"github.com/alem-hub/student-directory/internal/domain/student"
)

// resolveFunc looks a handle up in the primary store.
type resolveFunc func(id student.ID) (*student.Student, bool)

// departmentIndex keeps one ordered id sequence per department, sorted by
// (class year desc, id asc). It owns no records: every comparison resolves
// ids through the primary store.
//
// Callers must pass a department from the fixed set; the index does not
// re-validate it.
type departmentIndex struct {
	lists   map[student.Department][]student.ID
	resolve resolveFunc
}

func newDepartmentIndex(resolve resolveFunc) *departmentIndex {
	lists := make(map[student.Department][]student.ID, len(student.AllDepartments()))
	for _, dept := range student.AllDepartments() {
		lists[dept] = make([]student.ID, 0)
	}
	return &departmentIndex{lists: lists, resolve: resolve}
}

func (x *departmentIndex) known(dept student.Department) bool {
	_, ok := x.lists[dept]
	return ok
}

// insertSorted places id in front of the first member it ranks before.
// Linear scan, O(n) per insert. id must already be present in the store.
func (x *departmentIndex) insertSorted(dept student.Department, id student.ID) {
	rec := x.mustResolve(id)
	list := x.lists[dept]

	pos := len(list)
	for i, memberID := range list {
		if rec.RanksBefore(x.mustResolve(memberID)) {
			pos = i
			break
		}
	}

	x.lists[dept] = slices.Insert(list, pos, id)
}

// remove drops id from the department's sequence. Absent ids are a no-op.
func (x *departmentIndex) remove(dept student.Department, id student.ID) bool {
	list := x.lists[dept]
	i := slices.Index(list, id)
	if i < 0 {
		return false
	}
	x.lists[dept] = slices.Delete(list, i, i+1)
	return true
}

func (x *departmentIndex) snapshot(dept student.Department) []student.ID {
	return slices.Clone(x.lists[dept])
}

func (x *departmentIndex) len(dept student.Department) int {
	return len(x.lists[dept])
}

func (x *departmentIndex) total() int {
	n := 0
	for _, list := range x.lists {
		n += len(list)
	}
	return n
}

func (x *departmentIndex) mustResolve(id student.ID) *student.Student {
	rec, ok := x.resolve(id)
	if !ok {
		panic(fmt.Sprintf("memory: department index references unknown student %d", id))
	}
	return rec
}
