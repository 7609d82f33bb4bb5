package command

import (
	"context"
	"fmt"

	"github.com/alem-hub/student-directory/internal/domain/shared"
	"github.com/alem-hub/student-directory/internal/domain/student"
	"github.com/alem-hub/student-directory/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE STUDENT COMMAND
// Removes a student from the directory. Deleting an absent student is a
// normal negative outcome, not an error.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteStudentCommand identifies the student to remove.
type DeleteStudentCommand struct {
	ID student.ID

	// CorrelationID for tracing.
	CorrelationID string
}

// DeleteStudentResult reports whether a student was removed.
type DeleteStudentResult struct {
	// Deleted is false when the student did not exist.
	Deleted bool

	// Student is the removed record (zero value when Deleted is false).
	Student student.Student
}

// DeleteStudentHandler handles the DeleteStudentCommand.
type DeleteStudentHandler struct {
	directory student.Directory
	publisher shared.EventPublisher // Optional
	logger    *logger.Logger
}

// NewDeleteStudentHandler creates a new DeleteStudentHandler.
func NewDeleteStudentHandler(
	directory student.Directory,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *DeleteStudentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &DeleteStudentHandler{
		directory: directory,
		publisher: publisher,
		logger:    log.With(logger.Component("delete_student")),
	}
}

// Handle executes the delete student command.
func (h *DeleteStudentHandler) Handle(ctx context.Context, cmd DeleteStudentCommand) (*DeleteStudentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("delete_student: %w", err)
	}

	existing, ok := h.directory.Get(cmd.ID)
	if !ok || !h.directory.Delete(cmd.ID) {
		h.logger.Debug("nothing to delete", logger.StudentID(int64(cmd.ID)))
		return &DeleteStudentResult{Deleted: false}, nil
	}

	h.logger.Debug("student deleted",
		logger.StudentID(int64(existing.ID)),
		logger.Department(existing.Department.String()),
		logger.CorrelationID(cmd.CorrelationID),
	)

	publish(h.publisher, h.logger, student.NewStudentRemovedEvent(existing, cmd.CorrelationID))

	return &DeleteStudentResult{Deleted: true, Student: existing}, nil
}
