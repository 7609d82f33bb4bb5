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
// UPDATE STUDENT COMMAND
// Changes the supplied fields of an existing student. A class year or
// department change moves the student within the department rosters.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateStudentCommand contains the data to update a student.
type UpdateStudentCommand struct {
	// ID is the student to update.
	ID student.ID

	// Updates contains the fields to change. Unset fields are left alone.
	Updates student.UpdateParams

	// CorrelationID for tracing.
	CorrelationID string
}

// UpdateStudentResult contains the result of an update.
type UpdateStudentResult struct {
	// Before is the record as it was.
	Before student.Student

	// After is the stored record.
	After student.Student

	// ChangedFields lists the supplied fields.
	ChangedFields []string

	// UpdatedAt is when the update was applied.
	UpdatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// UpdateStudentHandler handles the UpdateStudentCommand.
type UpdateStudentHandler struct {
	directory student.Directory
	publisher shared.EventPublisher // Optional
	logger    *logger.Logger
}

// NewUpdateStudentHandler creates a new UpdateStudentHandler.
func NewUpdateStudentHandler(
	directory student.Directory,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *UpdateStudentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &UpdateStudentHandler{
		directory: directory,
		publisher: publisher,
		logger:    log.With(logger.Component("update_student")),
	}
}

// Handle executes the update student command.
func (h *UpdateStudentHandler) Handle(ctx context.Context, cmd UpdateStudentCommand) (*UpdateStudentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("update_student: %w", err)
	}

	before, ok := h.directory.Get(cmd.ID)
	if !ok {
		return nil, fmt.Errorf("update_student: %w",
			student.ErrStudentNotFound.WithDetail(fmt.Errorf("id %d", cmd.ID)))
	}

	after, err := h.directory.Update(cmd.ID, cmd.Updates)
	if err != nil {
		h.logger.Debug("update rejected", logger.StudentID(int64(cmd.ID)), logger.Err(err))
		return nil, fmt.Errorf("update_student: %w", err)
	}

	changed := cmd.Updates.Fields()
	h.logger.Debug("student updated",
		logger.StudentID(int64(after.ID)),
		logger.Department(after.Department.String()),
		logger.Any("fields", changed),
		logger.CorrelationID(cmd.CorrelationID),
	)

	publish(h.publisher, h.logger, student.NewStudentUpdatedEvent(before, after, cmd.Updates, cmd.CorrelationID))

	return &UpdateStudentResult{
		Before:        before,
		After:         after,
		ChangedFields: changed,
		UpdatedAt:     time.Now().UTC(),
	}, nil
}
