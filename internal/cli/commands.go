package cli

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/greghah/students-db/internal/storage"
	"github.com/greghah/students-db/internal/types"
	"github.com/greghah/students-db/internal/utils/render"
	"github.com/spf13/cobra"
)

// parseID converts a command-line argument to a record id. Ids are
// positive integers assigned by the store; anything else is rejected
// here, before it ever reaches storage.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return id, nil
}

// validateStudent applies the validate:"..." tags on the Student model
// and translates failures into one readable message. Subcommands reject
// empty fields the same way the menu does — the store itself never
// will. The validator instance is shared (built once in newRootCmd),
// mirroring how the menu caches one per loop.
func (a *app) validateStudent(student types.Student) error {
	if err := a.validate.Struct(student); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			return errors.New(render.ValidationError(validateErrs))
		}
		return err
	}
	return nil
}

// newAddCmd handles `students-db add NAME GRADE EMAIL`.
func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME GRADE EMAIL",
		Short: "Add a student record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			student := types.Student{Name: args[0], Grade: args[1], Email: args[2]}
			if err := a.validateStudent(student); err != nil {
				return err
			}

			id, err := a.store.CreateStudent(student.Name, student.Grade, student.Email)
			if err != nil {
				return err
			}

			a.log.Debug("student created", slog.Int64("id", id))
			fmt.Fprintf(cmd.OutOrStdout(), "Student added with ID %d.\n", id)
			return nil
		},
	}
}

// newListCmd handles `students-db list [--json]`.
func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all student records in id order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := a.store.GetStudents()
			if err != nil {
				return err
			}

			if asJSON {
				return render.StudentsJSON(cmd.OutOrStdout(), students)
			}
			return render.Students(cmd.OutOrStdout(), students)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit records as a JSON array")
	return cmd
}

// newGetCmd handles `students-db get ID`.
func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one student record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			student, err := a.store.GetStudentByID(id)
			if err != nil {
				return err
			}
			return render.Student(cmd.OutOrStdout(), student)
		},
	}
}

// newUpdateCmd handles `students-db update ID NAME GRADE EMAIL`.
// All three fields are replaced together; there is no way to update
// only one of them, matching the store contract.
func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update ID NAME GRADE EMAIL",
		Short: "Replace all fields of a student record",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			student := types.Student{Name: args[1], Grade: args[2], Email: args[3]}
			if err := a.validateStudent(student); err != nil {
				return err
			}

			updated, err := a.store.UpdateStudentByID(id, student)
			if err != nil {
				return err
			}
			if !updated {
				fmt.Fprintf(cmd.OutOrStdout(), "No student with ID %d.\n", id)
				return nil
			}

			a.log.Debug("student updated", slog.Int64("id", id))
			fmt.Fprintln(cmd.OutOrStdout(), "Student updated.")
			return nil
		},
	}
}

// newDeleteCmd handles `students-db delete ID`.
//
// Deletion is irreversible, so without --yes the command shows the
// record and asks for confirmation on stdin, like the menu does.
func newDeleteCmd(a *app) *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a student record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !skipConfirm {
				student, err := a.store.GetStudentByID(id)
				if errors.Is(err, storage.ErrStudentNotFound) {
					fmt.Fprintf(cmd.OutOrStdout(), "No student with ID %d.\n", id)
					return nil
				}
				if err != nil {
					return err
				}
				if err := render.Student(cmd.OutOrStdout(), student); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Delete student %d? (y/n): ", id)
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Delete canceled.")
					return nil
				}
			}

			deleted, err := a.store.DeleteStudentByID(id)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "No student with ID %d.\n", id)
				return nil
			}

			a.log.Debug("student deleted", slog.Int64("id", id))
			fmt.Fprintln(cmd.OutOrStdout(), "Student deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false,
		"delete without asking for confirmation")
	return cmd
}
