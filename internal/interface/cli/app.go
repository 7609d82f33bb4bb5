package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/alem-hub/student-directory/config"
	"github.com/alem-hub/student-directory/internal/application/command"
	"github.com/alem-hub/student-directory/internal/application/eventhandler"
	"github.com/alem-hub/student-directory/internal/application/query"
	"github.com/alem-hub/student-directory/internal/infrastructure/importer/csvsource"
	"github.com/alem-hub/student-directory/internal/infrastructure/messaging"
	"github.com/alem-hub/student-directory/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/student-directory/internal/interface/cli/presenter"
	"github.com/alem-hub/student-directory/pkg/logger"
)

// app holds the components one command invocation works with.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	out      presenter.Presenter
	stderr   io.Writer
	registry *prometheus.Registry // nil when metrics are disabled

	bus       *messaging.InMemoryEventBus
	directory *memory.Directory

	// Commands
	addStudent     *command.AddStudentHandler
	updateStudent  *command.UpdateStudentHandler
	deleteStudent  *command.DeleteStudentHandler
	importStudents *command.ImportStudentsHandler

	// Queries
	getStudent   *query.GetStudentHandler
	listStudents *query.ListStudentsHandler
	rosters      *query.DepartmentRosterHandler
}

// newApp loads configuration and wires the directory, the event bus and
// the handlers together.
func newApp(opts *RootOptions, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load configuration", err)
	}

	out, err := presenter.New(opts.Format, stdout)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "select output format", err)
	}

	level := logger.ParseLevel(cfg.Observability.LogLevel)
	if opts.Verbose {
		level = logger.LevelDebug
	}
	log := logger.New(logger.Options{
		Output: stderr,
		Level:  level,
		Format: logger.ParseFormat(cfg.Observability.LogFormat),
	}).With(logger.String("app", cfg.App.Name))

	a := &app{cfg: cfg, log: log, out: out, stderr: stderr}

	var (
		dirMetrics *memory.Metrics
		busMetrics *messaging.EventBusMetrics
	)
	if cfg.Observability.MetricsEnabled {
		a.registry = prometheus.NewRegistry()
		dirMetrics = memory.NewMetrics(a.registry)
		busMetrics = messaging.NewEventBusMetrics(a.registry)
	}

	a.directory = memory.NewDirectory(memory.Options{Metrics: dirMetrics})
	a.bus = messaging.NewInMemoryEventBus(messaging.InMemoryEventBusConfig{
		Logger:  log,
		Metrics: busMetrics,
	})

	audit := eventhandler.NewAuditLogHandler(log, eventhandler.DefaultAuditLogConfig())
	if err := audit.Register(a.bus); err != nil {
		return nil, fmt.Errorf("register audit log: %w", err)
	}

	a.addStudent = command.NewAddStudentHandler(a.directory, a.bus, log)
	a.updateStudent = command.NewUpdateStudentHandler(a.directory, a.bus, log)
	a.deleteStudent = command.NewDeleteStudentHandler(a.directory, a.bus, log)
	a.importStudents = command.NewImportStudentsHandler(a.directory, a.bus, log, command.ImportStudentsConfig{
		MaxReportedFailures: cfg.Import.MaxReportedFailures,
	})

	a.getStudent = query.NewGetStudentHandler(a.directory)
	a.listStudents = query.NewListStudentsHandler(a.directory)
	a.rosters = query.NewDepartmentRosterHandler(a.directory)

	log.Debug("application wired",
		logger.String("environment", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Bool("metrics", a.registry != nil),
	)
	return a, nil
}

// csvSource opens path with the configured delimiter and comment character.
func (a *app) csvSource(path string) *csvsource.Source {
	return csvsource.NewFile(path, csvsource.Options{
		Delimiter: a.cfg.Import.DelimiterRune(),
		Comment:   a.cfg.Import.CommentRune(),
	})
}

// importFile runs a bulk import of the CSV file at path and presents the report.
func (a *app) importFile(ctx context.Context, path string) (*command.ImportReport, error) {
	report, err := a.importStudents.Handle(ctx, command.ImportStudentsCommand{Source: a.csvSource(path)})
	if report != nil {
		if perr := a.out.ImportReport(report); perr != nil {
			return report, perr
		}
	}
	return report, err
}

// printDepartments presents one department, or all of them when name is empty.
func (a *app) printDepartments(ctx context.Context, name string) error {
	rosters, err := a.rosters.Handle(ctx, query.DepartmentRosterQuery{Department: name})
	if err != nil {
		return err
	}
	return a.out.Departments(rosters)
}

// printAll presents every student in insertion order.
func (a *app) printAll(ctx context.Context) error {
	list, err := a.listStudents.Handle(ctx, query.ListStudentsQuery{})
	if err != nil {
		return err
	}
	return a.out.Students(list)
}

// close shuts the event bus down and, when metrics are enabled, writes the
// collected samples to stderr in the Prometheus text format.
func (a *app) close() error {
	var errs []error
	if err := a.bus.Close(); err != nil {
		errs = append(errs, err)
	}

	if a.registry != nil {
		families, err := a.registry.Gather()
		if err != nil {
			errs = append(errs, fmt.Errorf("gather metrics: %w", err))
		}
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(a.stderr, mf); err != nil {
				errs = append(errs, fmt.Errorf("write metrics: %w", err))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// fail presents err and returns it with an exit code.
func (a *app) fail(code int, message string, err error) error {
	exitErr := WrapExitError(code, message, err)
	if a.out.Error(ErrorCode(err), exitErr.Error()) == nil {
		exitErr.Reported = true
	}
	return exitErr
}
