// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. The records survive process restarts because the file does.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/greghah/students-db/internal/config"
	"github.com/greghah/students-db/internal/storage"
	"github.com/greghah/students-db/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	// Without this the sql.Open("sqlite3", ...) call would fail with
	// "unknown driver".
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// Each statement run through it is its own implicit transaction: the
// connection is acquired for the one statement, the write commits, and
// the connection goes back to the pool on every exit path.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at the path specified in cfg.StoragePath,
// ensures the students table exists, and returns a ready-to-use *SQLite.
//
// Naming convention: New() acts as a constructor. Go has no constructors,
// so the community convention is a package-level New() function that
// returns an initialised instance (and an error as the second value).
//
// Any failure here means the backing file cannot be opened or written —
// the caller should treat that as fatal to startup.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Ping forces a real connection now, so a bad path or unreadable
	// file fails at startup instead of on the first operation.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: connect: %w", err)
	}

	// SQLite allows only one writer at a time. Capping the pool at a
	// single connection sidesteps SQLITE_BUSY instead of handling it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: pragmas: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: ensure schema: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// applyPragmas sets per-connection SQLite configuration:
//   - WAL journal mode, so a reader never blocks the writer
//   - NORMAL synchronous mode (durability/speed balance)
//   - a busy timeout in case another process holds the file lock
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("exec %q: %w", pragma, err)
		}
	}

	return nil
}

// ensureSchema creates the students table if it does not already exist.
//
// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
// startup. If the table already exists nothing happens and existing
// rows are untouched.
//
// Schema:
//
//	id    — integer primary key, assigned by SQLite on insert.
//	        AUTOINCREMENT makes the assignment strictly increasing for
//	        the lifetime of the file: a deleted record's id is never
//	        handed out again.
//	name  — student's full name (TEXT = variable-length string)
//	grade — letter grade, stored as text
//	email — student's email address
func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  TEXT    NOT NULL,
			grade TEXT    NOT NULL,
			email TEXT    NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateStudent inserts a new row into the students table.
//
// HOW PREPARED STATEMENTS PREVENT SQL INJECTION:
// ────────────────────────────────────────────────
// If we built the query by concatenating user input:
//
//	query := "INSERT ... VALUES ('" + name + "')"
//
// A malicious user could enter: name = "'; DROP TABLE students; --"
// and destroy the database.
//
// Prepared statements use placeholders (?). The database driver sends
// the query and the values separately. The database engine treats the
// values as pure data, never as SQL syntax.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateStudent(name, grade, email string) (int64, error) {
	// Prepare compiles the SQL on the database side.
	// The ? placeholders will be filled in when we call Exec.
	stmt, err := s.Db.Prepare(
		"INSERT INTO students (name, grade, email) VALUES (?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	// defer ensures the statement is closed when this function returns,
	// even if we return early due to an error. Prevents resource leaks.
	defer stmt.Close()

	// Exec runs the prepared statement, substituting ? in the same order
	// the arguments are listed here. Order matters!
	result, err := stmt.Exec(name, grade, email)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	// LastInsertId returns the auto-generated primary key of the new row.
	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return lastID, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudentByID fetches exactly one student row matched by primary key.
//
// HOW QueryRow + Scan WORK:
// ──────────────────────────
// QueryRow executes the query and returns a *Row — a single-row result.
// Scan reads the columns from that row into Go variables IN ORDER.
// The order of variables in Scan must match the order of columns in SELECT.
// We pass pointers (&student.ID) so Scan can write into those locations.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudentByID(id int64) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, grade, email FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	var student types.Student

	// QueryRow returns exactly one row. If the query finds no match the
	// error surfaces only when you call Scan.
	err = stmt.QueryRow(id).Scan(
		&student.ID,    // ← maps to SELECT column 1: id
		&student.Name,  // ← maps to SELECT column 2: name
		&student.Grade, // ← maps to SELECT column 3: grade
		&student.Email, // ← maps to SELECT column 4: email
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// sql.ErrNoRows is the driver's sentinel for "nothing
			// matched". We translate it to our own sentinel so callers
			// don't have to import database/sql to test for it.
			return types.Student{}, fmt.Errorf(
				"no student with id %d: %w", id, storage.ErrStudentNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudents returns all student rows as a slice, ordered by id.
//
// HOW Query + rows.Next() WORK:
// ──────────────────────────────
// Query (unlike QueryRow) returns *sql.Rows — a cursor over multiple rows.
// We iterate with rows.Next() which advances the cursor and returns false
// when there are no more rows. We Scan each row inside the loop.
// Always defer rows.Close() to release the database connection.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudents() ([]types.Student, error) {
	stmt, err := s.Db.Prepare(
		// Explicitly list columns — never use SELECT * in production code.
		// If a column is added later, SELECT * would break Scan's ordering.
		//
		// ORDER BY id makes insertion order explicit rather than relying
		// on SQLite's default row ordering.
		"SELECT id, name, grade, email FROM students ORDER BY id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	// Query returns a cursor (*sql.Rows) over the result set.
	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close() // must close rows to free the DB connection

	// Pre-allocate an empty (non-nil) slice.
	// An empty store yields an empty list, never nil and never an error.
	students := make([]types.Student, 0)

	for rows.Next() { // advances cursor; returns false when exhausted
		var student types.Student

		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Grade,
			&student.Email,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}

		students = append(students, student)
	}

	// rows.Err() captures any error that occurred during iteration.
	// This is separate from Scan errors.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateStudentByID replaces a student's data with the provided values.
// All three non-id fields are overwritten in one statement — a record is
// never left with a mix of old and new values.
//
// The returned bool is RowsAffected translated to "did the id exist":
// an UPDATE whose WHERE clause matches nothing succeeds with zero rows
// affected, so an absent id is reported as (false, nil), not an error.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) UpdateStudentByID(id int64, student types.Student) (bool, error) {
	stmt, err := s.Db.Prepare(
		"UPDATE students SET name = ?, grade = ?, email = ? WHERE id = ?",
	)
	if err != nil {
		return false, fmt.Errorf("UpdateStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	// Note the argument order matches the ? order in the SQL:
	//   name, grade, email, id
	result, err := stmt.Exec(student.Name, student.Grade, student.Email, id)
	if err != nil {
		return false, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("UpdateStudentByID: rows affected: %w", err)
	}

	return affected > 0, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// DeleteStudentByID removes a student row by primary key. Deletion is
// immediate and irreversible — there is no soft delete.
//
// Same rows-affected contract as Update: (false, nil) when the id was
// not present.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) DeleteStudentByID(id int64) (bool, error) {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return false, fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return false, fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}

	return affected > 0, nil
}

// Close releases the connection pool. Safe to call once the store is no
// longer needed; any later operation will fail.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
