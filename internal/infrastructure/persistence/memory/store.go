// Package memory implements the student directory as an in-memory aggregate.
//
// Three structures are kept in lockstep by Directory:
//
//   - store: id -> *student.Student, the only owner of record data
//   - roster: ids in insertion order
//   - departmentIndex: per-department ids ordered by class year desc, id asc
//
// The roster and the index hold ids, never copies, and resolve them through
// the store, so a record's fields live in exactly one place.
package memory

import (
	"github.com/alem-hub/student-directory/internal/domain/student"
)

// store is the primary store: the single source of truth for which students
// exist and what their fields are.
type store struct {
	records map[student.ID]*student.Student
}

func newStore() *store {
	return &store{records: make(map[student.ID]*student.Student)}
}

func (s *store) get(id student.ID) (*student.Student, bool) {
	rec, ok := s.records[id]
	return rec, ok
}

func (s *store) has(id student.ID) bool {
	_, ok := s.records[id]
	return ok
}

func (s *store) put(rec *student.Student) {
	s.records[rec.ID] = rec
}

func (s *store) remove(id student.ID) (*student.Student, bool) {
	rec, ok := s.records[id]
	if ok {
		delete(s.records, id)
	}
	return rec, ok
}

func (s *store) len() int {
	return len(s.records)
}
