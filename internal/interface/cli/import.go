package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alem-hub/student-directory/internal/domain/shared"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Bulk-import students from a CSV file",
		Long: `Reads students from a CSV file with a header row naming
student_id, name, gpa, class_year, major and department, then prints the
import report followed by the complete student list.

Rejected rows are listed in the report and do not fail the command. A file
that cannot be opened, or whose header lacks a required column, does.`,
		Example: `  directory import students.csv
  IMPORT_DELIMITER=";" directory import students.csv --format json`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				return runImport(ctx, a, args[0])
			})
		},
	}

	return cmd
}

func runImport(ctx context.Context, a *app, path string) error {
	if _, err := a.importFile(ctx, path); err != nil {
		if shared.IsSourceUnavailable(err) {
			return a.fail(ExitCommandError, "import students", err)
		}
		return a.fail(ExitFailure, "import students", err)
	}

	if err := a.printAll(ctx); err != nil {
		return a.fail(ExitFailure, "list students", err)
	}
	return nil
}
