package messaging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-directory/internal/domain/shared"
	"github.com/alem-hub/student-directory/pkg/logger"
)

type testEvent struct {
	shared.BaseEvent
}

func (testEvent) Payload() map[string]interface{} { return nil }

func TestInMemoryEventBus_DeliversInOrder(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{Logger: logger.Nop()})

	var calls []string
	require.NoError(t, bus.Subscribe(shared.EventStudentAdded, func(shared.Event) error {
		calls = append(calls, "typed-1")
		return nil
	}))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		calls = append(calls, "all")
		return nil
	}))
	require.NoError(t, bus.Subscribe(shared.EventStudentAdded, func(shared.Event) error {
		calls = append(calls, "typed-2")
		return nil
	}))
	require.NoError(t, bus.Subscribe(shared.EventStudentRemoved, func(shared.Event) error {
		calls = append(calls, "removed")
		return nil
	}))

	require.NoError(t, bus.Publish(testEvent{shared.NewBaseEvent(shared.EventStudentAdded, "1")}))

	assert.Equal(t, []string{"typed-1", "typed-2", "all"}, calls)
}

func TestInMemoryEventBus_HandlerFailuresAreContained(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Output: &buf, Level: logger.LevelError, Format: logger.FormatText})
	reg := prometheus.NewRegistry()
	metrics := NewEventBusMetrics(reg)
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{Logger: log, Metrics: metrics})

	reached := false
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		return errors.New("boom")
	}))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		panic("handler bug")
	}))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		reached = true
		return nil
	}))

	err := bus.Publish(shared.NewImportCompletedEvent("batch-1", "students.csv", 3, 1))
	require.NoError(t, err)
	assert.True(t, reached)

	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "handler panicked")

	eventType := string(shared.EventImportCompleted)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.published.WithLabelValues(eventType)))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.handled.WithLabelValues(eventType, "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.handled.WithLabelValues(eventType, "success")))
}

func TestInMemoryEventBus_RejectsNil(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{Logger: logger.Nop()})

	assert.Error(t, bus.Subscribe(shared.EventStudentAdded, nil))
	assert.Error(t, bus.SubscribeAll(nil))
	assert.Error(t, bus.Publish(nil))
}

func TestInMemoryEventBus_Closed(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{Logger: logger.Nop()})

	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	assert.ErrorIs(t, bus.Subscribe(shared.EventStudentAdded, func(shared.Event) error { return nil }), ErrEventBusClosed)
	assert.ErrorIs(t, bus.Publish(shared.NewImportCompletedEvent("b", "s", 0, 0)), ErrEventBusClosed)
}
