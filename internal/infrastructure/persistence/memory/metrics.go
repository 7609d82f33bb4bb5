package memory

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alem-hub/student-directory/internal/domain/shared"
	"github.com/alem-hub/student-directory/internal/domain/student"
)

// Operation and result label values.
const (
	opAdd    = "add"
	opUpdate = "update"
	opDelete = "delete"

	resultOK        = "ok"
	resultInvalid   = "invalid"
	resultDuplicate = "duplicate"
	resultNotFound  = "not_found"
)

// Metrics collects directory counters. A nil *Metrics is a valid no-op.
type Metrics struct {
	operations *prometheus.CounterVec
	students   *prometheus.GaugeVec
}

// NewMetrics creates directory metrics registered on reg.
// A nil registerer yields working but unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "student_directory_operations_total",
			Help: "Directory mutations by operation and result",
		}, []string{"operation", "result"}),
		students: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "student_directory_department_students",
			Help: "Number of students currently listed per department",
		}, []string{"department"}),
	}
}

func (m *Metrics) recordOperation(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, resultFor(err)).Inc()
}

func (m *Metrics) setDepartmentSize(dept student.Department, n int) {
	if m == nil {
		return
	}
	m.students.WithLabelValues(dept.String()).Set(float64(n))
}

func resultFor(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, shared.ErrNotFound):
		return resultNotFound
	case errors.Is(err, shared.ErrAlreadyExists):
		return resultDuplicate
	default:
		return resultInvalid
	}
}
