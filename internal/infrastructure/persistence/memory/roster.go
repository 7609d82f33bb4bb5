package memory

import (
	"slices"

	"github.com/alem-hub/student-directory/internal/domain/student"
)

// roster is the insertion-ordered view. Deleted ids are removed, not
// tombstoned, so survivors keep their relative order.
type roster struct {
	ids []student.ID
}

func newRoster() *roster {
	return &roster{ids: make([]student.ID, 0)}
}

func (r *roster) append(id student.ID) {
	r.ids = append(r.ids, id)
}

// remove drops id in O(n). Returns false when id is not present.
func (r *roster) remove(id student.ID) bool {
	i := slices.Index(r.ids, id)
	if i < 0 {
		return false
	}
	r.ids = slices.Delete(r.ids, i, i+1)
	return true
}

func (r *roster) snapshot() []student.ID {
	return slices.Clone(r.ids)
}

func (r *roster) len() int {
	return len(r.ids)
}
