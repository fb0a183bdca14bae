// Package render provides helpers for writing consistent terminal output.
//
// Both the interactive menu and the subcommands print students and
// validation failures. Rather than repeating the same formatting in
// every caller, we centralise it here — the output of `list` and of
// menu option 2 should never drift apart.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"
	"github.com/greghah/students-db/internal/types"
)

// Students writes all records as an aligned table:
//
//	ID  NAME          GRADE  EMAIL
//	1   Ann Perkins   A      ann@x.com
//	2   Ben Wyatt     B      ben@x.com
//
// An empty slice prints a friendly line instead of a bare header.
//
// text/tabwriter pads columns so they line up regardless of content
// width — Flush must be called to actually emit the buffered rows.
func Students(w io.Writer, students []types.Student) error {
	if len(students) == 0 {
		_, err := fmt.Fprintln(w, "No students recorded yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGRADE\tEMAIL")
	for _, s := range students {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, s.Name, s.Grade, s.Email)
	}
	return tw.Flush()
}

// Student writes a single record in the same one-line shape the table
// uses, without the header. Used by `get` and by the delete
// confirmation prompt.
func Student(w io.Writer, s types.Student) error {
	_, err := fmt.Fprintf(w, "%d  %s  %s  %s\n", s.ID, s.Name, s.Grade, s.Email)
	return err
}

// StudentsJSON encodes the records as a JSON array for the `list --json`
// flag, so the output can be piped into jq or another program.
//
// json.NewEncoder(w) streams directly into w, avoiding an intermediate
// buffer. Encode() appends a trailing newline — handy for shell use.
func StudentsJSON(w io.Writer, students []types.Student) error {
	return json.NewEncoder(w).Encode(students)
}

// ValidationError converts a slice of validator.FieldError values into
// a single human-readable line.
//
// The go-playground/validator package returns one FieldError per failing
// struct field. We convert each to a plain English sentence and join them
// with ", " so the user sees one descriptive message.
//
// Example output:
//
//	field Name is required, field Email is required
func ValidationError(errs validator.ValidationErrors) string {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		// "required" tag — field was missing or empty
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		// Catch-all for any other validation tag (min, max, len, etc.)
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return strings.Join(errMessages, ", ")
}
