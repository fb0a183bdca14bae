// Package menu implements the interactive loop that drives the record
// store from a terminal: a numbered menu, field prompts, and the
// guard rails the store itself deliberately does not provide —
// re-prompting on a malformed id, validating fields before a write,
// and asking for confirmation before a delete.
//
// The loop reads from an io.Reader and writes to an io.Writer rather
// than touching os.Stdin/os.Stdout directly, so tests can drive it
// with a bytes.Buffer and a scripted input string.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/greghah/students-db/internal/storage"
	"github.com/greghah/students-db/internal/types"
	"github.com/greghah/students-db/internal/utils/render"
)

// Menu ties the prompt loop to a Storage backend.
type Menu struct {
	store    storage.Storage
	in       *bufio.Scanner
	out      io.Writer
	log      *slog.Logger
	validate *validator.Validate
}

// New returns a Menu reading choices from in and printing to out.
func New(store storage.Storage, in io.Reader, out io.Writer, log *slog.Logger) *Menu {
	return &Menu{
		store:    store,
		in:       bufio.NewScanner(in),
		out:      out,
		log:      log,
		validate: validator.New(),
	}
}

// Run loops until the user picks Exit or the input stream ends.
//
// A storage failure inside one operation is printed and the loop
// continues — the next operation is independent and may well succeed.
// Only running out of input (or an input read error) ends the loop
// early.
func (m *Menu) Run() error {
	for {
		fmt.Fprintln(m.out, "\n--- Student Database Menu ---")
		fmt.Fprintln(m.out, "1) Add student")
		fmt.Fprintln(m.out, "2) View students")
		fmt.Fprintln(m.out, "3) Update student")
		fmt.Fprintln(m.out, "4) Delete student")
		fmt.Fprintln(m.out, "5) Exit")

		choice, ok := m.prompt("Choose an option (1-5): ")
		if !ok {
			// Input ran out (Ctrl+D or a closed pipe) — treat it the
			// same as choosing Exit.
			fmt.Fprintln(m.out, "\nExiting.")
			return m.in.Err()
		}

		switch choice {
		case "1":
			m.addStudent()
		case "2":
			m.viewStudents()
		case "3":
			m.updateStudent()
		case "4":
			m.deleteStudent()
		case "5":
			fmt.Fprintln(m.out, "Exiting.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid input, try again.")
		}
	}
}

// prompt prints label and returns the next trimmed input line.
// ok is false when the input stream is exhausted.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// promptID keeps asking until the user supplies a well-formed positive
// integer. A malformed id is an interaction problem, not a storage
// problem, so it never reaches the store — we re-prompt instead.
func (m *Menu) promptID(label string) (int64, bool) {
	for {
		raw, ok := m.prompt(label)
		if !ok {
			return 0, false
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			fmt.Fprintln(m.out, "Invalid ID. Must be a positive number.")
			continue
		}
		return id, true
	}
}

// promptStudent collects the three non-id fields and validates them.
// The store would happily accept empty strings; the menu is where
// "required, non-empty" is enforced.
func (m *Menu) promptStudent() (types.Student, bool) {
	var student types.Student
	var ok bool

	if student.Name, ok = m.prompt("Name: "); !ok {
		return types.Student{}, false
	}
	if student.Grade, ok = m.prompt("Grade: "); !ok {
		return types.Student{}, false
	}
	if student.Email, ok = m.prompt("Email: "); !ok {
		return types.Student{}, false
	}

	if err := m.validate.Struct(student); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			fmt.Fprintln(m.out, render.ValidationError(validateErrs))
		} else {
			fmt.Fprintln(m.out, err.Error())
		}
		return types.Student{}, false
	}

	return student, true
}

func (m *Menu) addStudent() {
	student, ok := m.promptStudent()
	if !ok {
		return
	}

	id, err := m.store.CreateStudent(student.Name, student.Grade, student.Email)
	if err != nil {
		m.log.Error("create failed", slog.String("error", err.Error()))
		fmt.Fprintf(m.out, "Could not add student: %v\n", err)
		return
	}

	m.log.Debug("student created", slog.Int64("id", id))
	fmt.Fprintf(m.out, "Student added with ID %d.\n", id)
}

func (m *Menu) viewStudents() {
	students, err := m.store.GetStudents()
	if err != nil {
		m.log.Error("list failed", slog.String("error", err.Error()))
		fmt.Fprintf(m.out, "Could not list students: %v\n", err)
		return
	}

	render.Students(m.out, students)
}

func (m *Menu) updateStudent() {
	id, ok := m.promptID("Student ID to update: ")
	if !ok {
		return
	}

	student, ok := m.promptStudent()
	if !ok {
		return
	}

	updated, err := m.store.UpdateStudentByID(id, student)
	if err != nil {
		m.log.Error("update failed",
			slog.Int64("id", id), slog.String("error", err.Error()))
		fmt.Fprintf(m.out, "Could not update student: %v\n", err)
		return
	}
	if !updated {
		fmt.Fprintf(m.out, "No student with ID %d.\n", id)
		return
	}

	fmt.Fprintln(m.out, "Student updated.")
}

func (m *Menu) deleteStudent() {
	id, ok := m.promptID("Student ID to delete: ")
	if !ok {
		return
	}

	// Show the record before asking — confirming against a blind id is
	// how the wrong student gets deleted.
	student, err := m.store.GetStudentByID(id)
	switch {
	case errors.Is(err, storage.ErrStudentNotFound):
		fmt.Fprintf(m.out, "No student with ID %d.\n", id)
		return
	case err != nil:
		m.log.Error("lookup failed",
			slog.Int64("id", id), slog.String("error", err.Error()))
		fmt.Fprintf(m.out, "Could not look up student: %v\n", err)
		return
	}
	render.Student(m.out, student)

	confirm, ok := m.prompt(fmt.Sprintf("Delete student %d? (y/n): ", id))
	if !ok || strings.ToLower(confirm) != "y" {
		fmt.Fprintln(m.out, "Delete canceled.")
		return
	}

	deleted, err := m.store.DeleteStudentByID(id)
	if err != nil {
		m.log.Error("delete failed",
			slog.Int64("id", id), slog.String("error", err.Error()))
		fmt.Fprintf(m.out, "Could not delete student: %v\n", err)
		return
	}
	if !deleted {
		// The record vanished between the lookup and the delete —
		// possible if another process shares the file.
		fmt.Fprintf(m.out, "No student with ID %d.\n", id)
		return
	}

	fmt.Fprintln(m.out, "Student deleted.")
}
