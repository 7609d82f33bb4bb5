// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/alem-hub/student-directory/internal/domain/shared"
	"github.com/alem-hub/student-directory/internal/domain/student"
	"github.com/alem-hub/student-directory/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD STUDENT COMMAND
// Registers a new student in the directory.
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentCommand contains the fields of the new student.
type AddStudentCommand struct {
	ID         student.ID
	Name       string
	GPA        float64
	ClassYear  student.ClassYear
	Major      string
	Department student.Department

	// CorrelationID for tracing.
	CorrelationID string
}

func (c AddStudentCommand) params() student.NewStudentParams {
	return student.NewStudentParams{
		ID:         c.ID,
		Name:       c.Name,
		GPA:        c.GPA,
		ClassYear:  c.ClassYear,
		Major:      c.Major,
		Department: c.Department,
	}
}

// AddStudentResult contains the stored student.
type AddStudentResult struct {
	Student student.Student
	AddedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentHandler handles the AddStudentCommand.
type AddStudentHandler struct {
	directory student.Directory
	publisher shared.EventPublisher // Optional
	logger    *logger.Logger
}

// NewAddStudentHandler creates a new AddStudentHandler.
func NewAddStudentHandler(
	directory student.Directory,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *AddStudentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AddStudentHandler{
		directory: directory,
		publisher: publisher,
		logger:    log.With(logger.Component("add_student")),
	}
}

// Handle executes the add student command.
func (h *AddStudentHandler) Handle(ctx context.Context, cmd AddStudentCommand) (*AddStudentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("add_student: %w", err)
	}

	added, err := h.directory.Add(cmd.params())
	if err != nil {
		h.logger.Debug("student rejected", logger.StudentID(int64(cmd.ID)), logger.Err(err))
		return nil, fmt.Errorf("add_student: %w", err)
	}

	h.logger.Debug("student added",
		logger.StudentID(int64(added.ID)),
		logger.Department(added.Department.String()),
		logger.CorrelationID(cmd.CorrelationID),
	)

	publish(h.publisher, h.logger, student.NewStudentAddedEvent(added, cmd.CorrelationID))

	return &AddStudentResult{
		Student: added,
		AddedAt: time.Now().UTC(),
	}, nil
}

// publish sends event if a publisher is configured. Publishing failures are
// logged; the mutation has already been applied.
func publish(publisher shared.EventPublisher, log *logger.Logger, event shared.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(event); err != nil {
		log.Warn("failed to publish event",
			logger.EventType(string(event.EventType())),
			logger.String("aggregate_id", event.AggregateID()),
			logger.Err(err),
		)
	}
}
