package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alem-hub/student-directory/internal/application/command"
	"github.com/alem-hub/student-directory/internal/application/query"
	"github.com/alem-hub/student-directory/internal/domain/shared"
)

// ListOptions holds the flags of the list command.
type ListOptions struct {
	From       string
	Department string
	Limit      int
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List students",
		Long: `Lists students, optionally after importing them from a CSV file.

Without --department the complete list is printed in insertion order. With
--department the roster of that department is printed, highest class year
first and then by id. Department names are case-insensitive.`,
		Example: `  directory list --from students.csv
  directory list --from students.csv --department "natural sciences"
  directory list --from students.csv --limit 10 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Limit < 0 {
				return NewExitError(ExitCommandError, "--limit cannot be negative")
			}
			return runWithApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				return runList(ctx, a, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "CSV file to import before listing")
	cmd.Flags().StringVar(&opts.Department, "department", "", "list only this department's roster")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of students in the complete list (0 = all)")

	return cmd
}

func runList(ctx context.Context, a *app, opts *ListOptions) error {
	if opts.From != "" {
		if err := loadQuietly(ctx, a, opts.From); err != nil {
			return err
		}
	}

	if opts.Department != "" {
		if err := a.printDepartments(ctx, opts.Department); err != nil {
			if shared.IsValidation(err) {
				return a.fail(ExitCommandError, "list department", err)
			}
			return a.fail(ExitFailure, "list department", err)
		}
		return nil
	}

	list, err := a.listStudents.Handle(ctx, query.ListStudentsQuery{Limit: opts.Limit})
	if err != nil {
		return a.fail(ExitFailure, "list students", err)
	}
	return a.out.Students(list)
}

// loadQuietly imports path without presenting the report; rejected rows are
// logged by the import handler.
func loadQuietly(ctx context.Context, a *app, path string) error {
	_, err := a.importStudents.Handle(ctx, command.ImportStudentsCommand{Source: a.csvSource(path)})
	switch {
	case shared.IsSourceUnavailable(err):
		return a.fail(ExitCommandError, "load students", err)
	case err != nil:
		return a.fail(ExitFailure, "load students", err)
	}
	return nil
}
