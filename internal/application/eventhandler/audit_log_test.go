package eventhandler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-directory/internal/domain/shared"
	"github.com/alem-hub/student-directory/internal/domain/student"
	"github.com/alem-hub/student-directory/internal/infrastructure/messaging"
	"github.com/alem-hub/student-directory/pkg/logger"
)

func TestAuditLogHandler_LogsEventsFromBus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Output: &buf, Level: logger.LevelInfo, Format: logger.FormatText})

	bus := messaging.NewInMemoryEventBus(messaging.InMemoryEventBusConfig{Logger: logger.Nop()})
	h := NewAuditLogHandler(log, DefaultAuditLogConfig())
	require.NoError(t, h.Register(bus))

	s := student.Student{
		ID: 1101, Name: "John Doe", GPA: 3.8, ClassYear: student.ClassYearSenior,
		Major: "CS", Department: student.DepartmentMathematicalStudies,
	}
	require.NoError(t, bus.Publish(student.NewStudentAddedEvent(s, "batch-1")))
	require.NoError(t, bus.Publish(shared.NewImportCompletedEvent("batch-1", "students.csv", 4, 1)))

	out := buf.String()
	assert.Contains(t, out, "directory event")
	assert.Contains(t, out, "component=audit")
	assert.Contains(t, out, "event_type=student.added")
	assert.Contains(t, out, "aggregate_id=1101")
	assert.Contains(t, out, `payload.department="Mathematical Studies"`)
	assert.Contains(t, out, "event_type=import.completed")
	assert.Contains(t, out, "payload.succeeded=4")
	assert.Contains(t, out, "payload.failed=1")
}

func TestAuditLogHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Output: &buf, Level: logger.LevelInfo, Format: logger.FormatText})

	h := NewAuditLogHandler(log, AuditLogConfig{Level: logger.LevelDebug})
	require.NoError(t, h.Handle(shared.NewImportCompletedEvent("b", "s", 0, 0)))

	assert.Empty(t, buf.String(), "debug audit entries are filtered at info level")
}

func TestAuditLogHandler_Errors(t *testing.T) {
	h := NewAuditLogHandler(nil, DefaultAuditLogConfig())

	assert.Error(t, h.Handle(nil))
	assert.Error(t, h.Register(nil))
}
