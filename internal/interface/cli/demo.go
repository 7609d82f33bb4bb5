package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alem-hub/student-directory/internal/application/command"
	"github.com/alem-hub/student-directory/internal/domain/shared"
	"github.com/alem-hub/student-directory/internal/domain/student"
)

// demoPromotedID is the student the demo moves from Junior to Senior.
const demoPromotedID student.ID = 1002

// demoSeed is added before anything else.
var demoSeed = []command.AddStudentCommand{
	{
		ID: 1101, Name: "John Doe", GPA: 3.8, ClassYear: student.ClassYearSenior,
		Major: "Computer Science", Department: student.DepartmentMathematicalStudies,
	},
	{
		ID: 1102, Name: "Jane Smith", GPA: 3.9, ClassYear: student.ClassYearJunior,
		Major: "Mathematics", Department: student.DepartmentMathematicalStudies,
	},
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the sample directory walkthrough",
		Long: `Seeds two students, optionally bulk-imports a CSV file, prints every
department roster, promotes student 1002 to Senior, prints the Mathematical
Studies roster again and finally the complete list.

A CSV file that cannot be read is reported and the walkthrough continues.`,
		Example: `  directory demo
  directory demo --csv students.csv
  directory demo --csv students.csv --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				return runDemo(ctx, a, csvPath)
			})
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to import after seeding")

	return cmd
}

func runDemo(ctx context.Context, a *app, csvPath string) error {
	for _, seed := range demoSeed {
		seed.CorrelationID = "demo-seed"
		if _, err := a.addStudent.Handle(ctx, seed); err != nil {
			return a.fail(ExitFailure, "seed demo data", err)
		}
	}

	if csvPath != "" {
		_, err := a.importFile(ctx, csvPath)
		switch {
		case shared.IsSourceUnavailable(err):
			if err := a.out.Message(fmt.Sprintf("An error occurred during CSV upload: %v", err)); err != nil {
				return err
			}
		case err != nil:
			return a.fail(ExitFailure, "import students", err)
		}
	}

	if err := a.out.Heading("Department-wise Student List"); err != nil {
		return err
	}
	if err := a.printDepartments(ctx, ""); err != nil {
		return a.fail(ExitFailure, "list departments", err)
	}

	if err := a.out.Message(fmt.Sprintf("\nUpdating student %d from Junior to Senior...", demoPromotedID)); err != nil {
		return err
	}
	_, err := a.updateStudent.Handle(ctx, command.UpdateStudentCommand{
		ID:            demoPromotedID,
		Updates:       student.UpdateParams{ClassYear: student.Some(student.ClassYearSenior)},
		CorrelationID: "demo-promotion",
	})
	switch {
	case shared.IsNotFound(err):
		if err := a.out.Message(fmt.Sprintf("Student %d is not in the directory; nothing to update.", demoPromotedID)); err != nil {
			return err
		}
	case err != nil:
		return a.fail(ExitFailure, "update student", err)
	}

	if err := a.out.Message("\nMathematical Studies Department after update:"); err != nil {
		return err
	}
	if err := a.printDepartments(ctx, student.DepartmentMathematicalStudies.String()); err != nil {
		return a.fail(ExitFailure, "list department", err)
	}

	if err := a.printAll(ctx); err != nil {
		return a.fail(ExitFailure, "list students", err)
	}
	return nil
}
