package memory

import (
	"fmt"
	"iter"
	"sync"

	"github.com/alem-hub/student-directory/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// DIRECTORY
// ══════════════════════════════════════════════════════════════════════════════

// Options configures a Directory.
type Options struct {
	// Metrics is optional.
	Metrics *Metrics
}

// Directory is the in-memory student.Directory.
//
// Every mutation holds the write lock across the store, the roster and the
// department index, so no reader can observe a student that is present in
// one structure and missing from another.
type Directory struct {
	mu sync.RWMutex

	store  *store
	roster *roster
	index  *departmentIndex

	metrics *Metrics
}

var _ student.Directory = (*Directory)(nil)

// NewDirectory creates an empty directory.
func NewDirectory(opts Options) *Directory {
	st := newStore()
	d := &Directory{
		store:   st,
		roster:  newRoster(),
		index:   newDepartmentIndex(st.get),
		metrics: opts.Metrics,
	}
	for _, dept := range student.AllDepartments() {
		d.metrics.setDepartmentSize(dept, 0)
	}
	return d
}

// ─────────────────────────────────────────────────────────────────────────────
// Mutations
// ─────────────────────────────────────────────────────────────────────────────

// Add validates params and inserts the student into all three structures.
// On any error nothing is touched.
func (d *Directory) Add(params student.NewStudentParams) (student.Student, error) {
	rec, err := student.NewStudent(params)
	if err != nil {
		d.metrics.recordOperation(opAdd, err)
		return student.Student{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.store.has(rec.ID) {
		err := student.ErrDuplicateID.WithDetail(fmt.Errorf("id %d", rec.ID))
		d.metrics.recordOperation(opAdd, err)
		return student.Student{}, err
	}

	d.store.put(rec)
	d.roster.append(rec.ID)
	d.index.insertSorted(rec.Department, rec.ID)

	d.metrics.recordOperation(opAdd, nil)
	d.metrics.setDepartmentSize(rec.Department, d.index.len(rec.Department))

	return *rec, nil
}

// Update applies the supplied fields. The merged record is validated before
// anything changes. When class year or department is supplied the student is
// taken out of its department sequence and re-inserted, even if the values
// are unchanged.
func (d *Directory) Update(id student.ID, params student.UpdateParams) (student.Student, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.store.get(id)
	if !ok {
		err := student.ErrStudentNotFound.WithDetail(fmt.Errorf("id %d", id))
		d.metrics.recordOperation(opUpdate, err)
		return student.Student{}, err
	}

	merged := params.ApplyTo(*rec)
	if err := merged.Validate(); err != nil {
		d.metrics.recordOperation(opUpdate, err)
		return student.Student{}, err
	}

	oldDept := rec.Department
	resort := params.AffectsOrder()

	if resort {
		d.index.remove(oldDept, id)
	}
	*rec = merged
	if resort {
		d.index.insertSorted(rec.Department, id)
		d.metrics.setDepartmentSize(oldDept, d.index.len(oldDept))
		d.metrics.setDepartmentSize(rec.Department, d.index.len(rec.Department))
	}

	d.metrics.recordOperation(opUpdate, nil)
	return *rec, nil
}

// Delete removes the student from the store, the roster and its department.
// Returns false, with nothing changed, when the id is absent.
func (d *Directory) Delete(id student.ID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.store.remove(id)
	if !ok {
		d.metrics.recordOperation(opDelete, student.ErrStudentNotFound)
		return false
	}

	d.roster.remove(id)
	d.index.remove(rec.Department, id)

	d.metrics.recordOperation(opDelete, nil)
	d.metrics.setDepartmentSize(rec.Department, d.index.len(rec.Department))

	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Queries
// ─────────────────────────────────────────────────────────────────────────────

// Get returns a copy of the student in O(1).
func (d *Directory) Get(id student.ID) (student.Student, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.store.get(id)
	if !ok {
		return student.Student{}, false
	}
	return *rec, true
}

// ListAll returns the students in insertion order. The sequence is lazy and
// restartable: each range reads the directory as it is at that moment.
func (d *Directory) ListAll() iter.Seq[student.Student] {
	return d.sequence(d.roster.snapshot)
}

// ListByDepartment returns the department's students ordered by class year
// (descending) then id. Returns false for an unknown department.
func (d *Directory) ListByDepartment(dept student.Department) (iter.Seq[student.Student], bool) {
	d.mu.RLock()
	known := d.index.known(dept)
	d.mu.RUnlock()

	if !known {
		return nil, false
	}
	return d.sequence(func() []student.ID { return d.index.snapshot(dept) }), true
}

// Len returns the number of students.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.store.len()
}

// Counts returns the number of students per department, including empty ones.
func (d *Directory) Counts() map[student.Department]int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	counts := make(map[student.Department]int, len(student.AllDepartments()))
	for _, dept := range student.AllDepartments() {
		counts[dept] = d.index.len(dept)
	}
	return counts
}

// sequence copies the records behind ids under the read lock and yields them
// after releasing it, so callers may mutate the directory while ranging.
func (d *Directory) sequence(ids func() []student.ID) iter.Seq[student.Student] {
	return func(yield func(student.Student) bool) {
		for _, s := range d.resolveAll(ids) {
			if !yield(s) {
				return
			}
		}
	}
}

func (d *Directory) resolveAll(ids func() []student.ID) []student.Student {
	d.mu.RLock()
	defer d.mu.RUnlock()

	handles := ids()
	out := make([]student.Student, 0, len(handles))
	for _, id := range handles {
		if rec, ok := d.store.get(id); ok {
			out = append(out, *rec)
		}
	}
	return out
}
