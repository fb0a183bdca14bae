// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the CLI, the menu, and storage can all import types without depending
// on each other.
package types

// Student represents one student record in our system.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON
//     (the `list --json` output). Without this tag Go uses the exported
//     field name, e.g. "Name".
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "required" means the field must be non-zero / non-empty.
//     Validation runs at the interaction boundary (menu / subcommands),
//     never inside the store — the store accepts whatever it is given.
type Student struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"  validate:"required"`
	Grade string `json:"grade" validate:"required"`
	Email string `json:"email" validate:"required"`
}
