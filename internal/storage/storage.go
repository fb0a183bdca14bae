// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// The menu and the subcommands should not know or care which database
// they are talking to. By depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in the CLI wiring. Zero caller changes.
//
//   - Writing tests = pass a fake/mock that satisfies the interface.
//     No real database needed for unit tests.
//
// This is the Dependency Inversion Principle in practice.
package storage

import (
	"errors"

	"github.com/greghah/students-db/internal/types"
)

// ErrStudentNotFound is the sentinel returned by GetStudentByID when no
// record carries the requested id. Callers test for it with errors.Is
// rather than comparing message strings.
//
// Update and Delete deliberately do NOT return this error: a write
// against an absent id is a successful no-op, reported through their
// boolean result instead (see the method docs below).
var ErrStudentNotFound = errors.New("student not found")

// Storage is the database contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly (no "implements"
// keyword required).
type Storage interface {
	// CreateStudent inserts a new student record and returns the auto-
	// generated primary-key ID. Ids are assigned by the store, strictly
	// increasing, and never reused — even after deletes.
	// Empty field values are accepted; validation is the caller's job.
	CreateStudent(name string, grade string, email string) (int64, error)

	// GetStudentByID fetches a single student by their primary key.
	// Returns ErrStudentNotFound (wrapped) if no such record exists.
	GetStudentByID(id int64) (types.Student, error)

	// GetStudents returns every student, ordered by ascending id.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents() ([]types.Student, error)

	// UpdateStudentByID overwrites ALL non-id fields of the record with
	// the given id in one statement — there is no partial-field update.
	// The bool reports whether a row was actually affected: false means
	// the id was absent and the call was a no-op. No error is returned
	// for an absent id.
	UpdateStudentByID(id int64, student types.Student) (bool, error)

	// DeleteStudentByID removes a student record permanently. Like
	// Update, an absent id is a no-op reported as (false, nil), never
	// an error.
	DeleteStudentByID(id int64) (bool, error)

	// Close releases the underlying database handle.
	Close() error
}
