package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alem-hub/student-directory/internal/application/command"
	"github.com/alem-hub/student-directory/internal/domain/student"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "delete <student-id>",
		Short: "Remove one student",
		Long: `Imports students from a CSV file, removes one of them and prints the
students that remain.

Removing a student that is not in the directory is reported and is not an
error.`,
		Example: `  directory delete 1002 --from students.csv
  directory delete 1002 --from students.csv --format json`,
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
				return runDelete(ctx, a, from, id)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "CSV file to import before the removal")

	return cmd
}

func runDelete(ctx context.Context, a *app, from string, id student.ID) error {
	if err := loadQuietly(ctx, a, from); err != nil {
		return err
	}

	res, err := a.deleteStudent.Handle(ctx, command.DeleteStudentCommand{
		ID:            id,
		CorrelationID: uuid.NewString(),
	})
	if err != nil {
		return a.fail(ExitFailure, "delete student", err)
	}

	msg := fmt.Sprintf("Student %d deleted.", id)
	if !res.Deleted {
		msg = fmt.Sprintf("Student %d is not in the directory; nothing to delete.", id)
	}
	if err := a.out.Message(msg); err != nil {
		return err
	}

	if err := a.printAll(ctx); err != nil {
		return a.fail(ExitFailure, "list students", err)
	}
	return nil
}
