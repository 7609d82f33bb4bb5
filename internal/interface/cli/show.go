package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alem-hub/student-directory/internal/application/query"
	"github.com/alem-hub/student-directory/internal/domain/student"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "show <student-id>",
		Short: "Show one student",
		Long:  `Imports students from a CSV file and prints the record of one of them.`,
		Example: `  directory show 1002 --from students.csv
  directory show 1002 --from students.csv --format json`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return NewExitError(ExitCommandError, "--from is required")
			}
			id, err := student.ParseID(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid student id", err)
			}
			return runWithApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				return runShow(ctx, a, from, id)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "CSV file to import before the lookup")

	return cmd
}

func runShow(ctx context.Context, a *app, from string, id student.ID) error {
	if err := loadQuietly(ctx, a, from); err != nil {
		return err
	}

	dto, err := a.getStudent.Handle(ctx, query.GetStudentQuery{ID: id})
	if err != nil {
		return a.fail(ExitFailure, "show student", err)
	}
	return a.out.Students(&query.StudentListDTO{Students: []query.StudentDTO{*dto}, Total: 1})
}
