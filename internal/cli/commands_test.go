package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/greghah/students-db/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the full command tree against the database at dbPath,
// exactly as a user invocation would, and returns everything printed to
// the command's output stream.
func runCLI(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("CONFIG_PATH", "")
	os.Unsetenv("CONFIG_PATH")
	t.Setenv("ENV", "dev")
	t.Setenv("STORAGE_PATH", dbPath)

	root := newRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	if args == nil {
		// SetArgs(nil) would make cobra read os.Args, which holds the
		// test binary's own flags.
		args = []string{}
	}
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestAddThenList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	out, err := runCLI(t, db, "", "add", "Ann Perkins", "A", "ann@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Student added with ID 1.")

	out, err = runCLI(t, db, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann Perkins")
	assert.Contains(t, out, "ann@x.com")
}

func TestAdd_RejectsEmptyFields(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	_, err := runCLI(t, db, "", "add", "", "A", "ann@x.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field Name is required")
}

func TestList_JSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	_, err := runCLI(t, db, "", "add", "Ann", "A", "ann@x.com")
	require.NoError(t, err)

	out, err := runCLI(t, db, "", "list", "--json")
	require.NoError(t, err)

	var students []types.Student
	require.NoError(t, json.Unmarshal([]byte(out), &students))
	require.Len(t, students, 1)
	assert.Equal(t, types.Student{
		ID:    1,
		Name:  "Ann",
		Grade: "A",
		Email: "ann@x.com",
	}, students[0])
}

func TestGet_AbsentID(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	_, err := runCLI(t, db, "", "get", "999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no student with id 999")
}

func TestGet_MalformedID(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	_, err := runCLI(t, db, "", "get", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a positive integer")
}

func TestUpdate_ReplacesAllFields(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	_, err := runCLI(t, db, "", "add", "Ann", "A", "ann@x.com")
	require.NoError(t, err)

	out, err := runCLI(t, db, "", "update", "1", "Ben", "B", "ben@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Student updated.")

	out, err = runCLI(t, db, "", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ben")
	assert.Contains(t, out, "ben@x.com")
	assert.NotContains(t, out, "Ann")
}

func TestUpdate_AbsentIDIsNoOp(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	out, err := runCLI(t, db, "", "update", "999", "Ben", "B", "ben@x.com")
	require.NoError(t, err, "absent id is a no-op, not an error")
	assert.Contains(t, out, "No student with ID 999.")
}

func TestDelete_WithConfirmation(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	_, err := runCLI(t, db, "", "add", "Ann", "A", "ann@x.com")
	require.NoError(t, err)

	out, err := runCLI(t, db, "y\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete student 1? (y/n):")
	assert.Contains(t, out, "Student deleted.")
}

func TestDelete_Declined(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	_, err := runCLI(t, db, "", "add", "Ann", "A", "ann@x.com")
	require.NoError(t, err)

	out, err := runCLI(t, db, "n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete canceled.")

	out, err = runCLI(t, db, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann")
}

func TestDelete_SkipConfirmation(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	_, err := runCLI(t, db, "", "add", "Ann", "A", "ann@x.com")
	require.NoError(t, err)

	out, err := runCLI(t, db, "", "delete", "--yes", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Student deleted.")
}

func TestDelete_AbsentID(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	out, err := runCLI(t, db, "", "delete", "--yes", "999")
	require.NoError(t, err, "absent id is a no-op, not an error")
	assert.Contains(t, out, "No student with ID 999.")
}

func TestRoot_RunsInteractiveMenu(t *testing.T) {
	db := filepath.Join(t.TempDir(), "students.db")

	out, err := runCLI(t, db, "5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "--- Student Database Menu ---")
	assert.Contains(t, out, "Exiting.")
}

func TestParseID(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "simple", raw: "7", want: 7},
		{name: "large", raw: "123456789", want: 123456789},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-3", wantErr: true},
		{name: "letters", raw: "abc", wantErr: true},
		{name: "trailing garbage", raw: "7x", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := parseID(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}
