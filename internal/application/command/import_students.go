package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alem-hub/student-directory/internal/domain/shared"
	"github.com/alem-hub/student-directory/internal/domain/student"
	"github.com/alem-hub/student-directory/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// IMPORT STUDENTS COMMAND
// Bulk-loads students from a tabular source. Every row is attempted; a bad
// row is recorded in the report and the import moves on. A source that
// cannot be opened fails the command with zero rows processed; a source that
// breaks mid-stream stops it with the partial report.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultMaxReportedFailures caps the per-row failures kept in a report.
const DefaultMaxReportedFailures = 100

// ImportStudentsCommand names the source to import.
type ImportStudentsCommand struct {
	Source student.RowSource

	// CorrelationID becomes the batch ID. Generated when empty.
	CorrelationID string
}

// Validate validates the command.
func (c ImportStudentsCommand) Validate() error {
	if c.Source == nil {
		return errors.New("import_students: source is required")
	}
	return nil
}

// RowFailure describes one rejected row.
type RowFailure struct {
	// Line is the row's line number in the source.
	Line int

	// ID is the raw id text, if any.
	ID string

	// Err is the rejection reason.
	Err error
}

// ImportReport summarizes an import.
type ImportReport struct {
	BatchID   string
	Source    string
	Succeeded int
	Failed    int

	// Failures holds at most the configured number of rejected rows, in
	// source order. Failed counts all of them.
	Failures []RowFailure

	StartedAt time.Time
	Duration  time.Duration
}

// Total returns the number of rows processed.
func (r *ImportReport) Total() int {
	return r.Succeeded + r.Failed
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ImportStudentsConfig contains configuration for the import handler.
type ImportStudentsConfig struct {
	// MaxReportedFailures caps ImportReport.Failures. Zero means the default.
	MaxReportedFailures int
}

// ImportStudentsHandler handles the ImportStudentsCommand.
type ImportStudentsHandler struct {
	directory student.Directory
	publisher shared.EventPublisher // Optional
	logger    *logger.Logger
	config    ImportStudentsConfig
}

// NewImportStudentsHandler creates a new ImportStudentsHandler.
func NewImportStudentsHandler(
	directory student.Directory,
	publisher shared.EventPublisher,
	log *logger.Logger,
	config ImportStudentsConfig,
) *ImportStudentsHandler {
	if log == nil {
		log = logger.Nop()
	}
	if config.MaxReportedFailures <= 0 {
		config.MaxReportedFailures = DefaultMaxReportedFailures
	}
	return &ImportStudentsHandler{
		directory: directory,
		publisher: publisher,
		logger:    log.With(logger.Component("import_students")),
		config:    config,
	}
}

// Handle executes the import. A cancelled context or a source read failure
// stops the import between rows and returns the partial report together with
// the error.
func (h *ImportStudentsHandler) Handle(ctx context.Context, cmd ImportStudentsCommand) (*ImportReport, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	batchID := cmd.CorrelationID
	if batchID == "" {
		batchID = uuid.NewString()
	}
	log := h.logger.With(logger.BatchID(batchID), logger.String("source", cmd.Source.Name()))

	reader, err := cmd.Source.Open(ctx)
	if err != nil {
		if !shared.IsSourceUnavailable(err) {
			err = shared.ErrSourceUnavailable.WithDetail(err)
		}
		log.Error("import source unavailable", logger.Err(err))
		return nil, fmt.Errorf("import_students: %w", err)
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			log.Warn("failed to close import source", logger.Err(cerr))
		}
	}()

	report := &ImportReport{
		BatchID:   batchID,
		Source:    cmd.Source.Name(),
		Failures:  make([]RowFailure, 0),
		StartedAt: time.Now().UTC(),
	}

	var stopErr error
	for row, rowErr := range reader.Rows() {
		if err := ctx.Err(); err != nil {
			stopErr = err
			break
		}

		if shared.IsSourceReadFailure(rowErr) {
			log.Error("import source failed", logger.Int("rows_read", report.Total()), logger.Err(rowErr))
			stopErr = rowErr
			break
		}
		if rowErr != nil {
			h.fail(report, log, row, rowErr)
			continue
		}

		added, err := h.importRow(row)
		if err != nil {
			h.fail(report, log, row, err)
			continue
		}

		report.Succeeded++
		publish(h.publisher, log, student.NewStudentAddedEvent(added, batchID))
	}

	report.Duration = time.Since(report.StartedAt)

	log.Info("import finished",
		logger.Int("succeeded", report.Succeeded),
		logger.Int("failed", report.Failed),
		logger.Latency(report.Duration),
	)

	publish(h.publisher, log, shared.NewImportCompletedEvent(batchID, report.Source, report.Succeeded, report.Failed))

	if stopErr != nil {
		return report, fmt.Errorf("import_students: stopped after %d rows: %w", report.Total(), stopErr)
	}
	return report, nil
}

func (h *ImportStudentsHandler) importRow(row student.RawRow) (student.Student, error) {
	params, err := student.ParseRow(row)
	if err != nil {
		return student.Student{}, err
	}
	return h.directory.Add(params)
}

func (h *ImportStudentsHandler) fail(report *ImportReport, log *logger.Logger, row student.RawRow, err error) {
	report.Failed++
	if len(report.Failures) < h.config.MaxReportedFailures {
		report.Failures = append(report.Failures, RowFailure{Line: row.Line, ID: row.ID, Err: err})
	}
	log.Debug("row rejected", logger.Int("line", row.Line), logger.String("id", row.ID), logger.Err(err))
}
