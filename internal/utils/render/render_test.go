package render

import (
	"bytes"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/greghah/students-db/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudents_Table(t *testing.T) {
	var out bytes.Buffer

	err := Students(&out, []types.Student{
		{ID: 1, Name: "Ann Perkins", Grade: "A", Email: "ann@x.com"},
		{ID: 2, Name: "Ben", Grade: "B", Email: "ben@x.com"},
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "ID")
	assert.Contains(t, out.String(), "Ann Perkins")
	assert.Contains(t, out.String(), "ben@x.com")
}

func TestStudents_Empty(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, Students(&out, nil))
	assert.Equal(t, "No students recorded yet.\n", out.String())
}

func TestStudentsJSON_EmptyIsArray(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, StudentsJSON(&out, []types.Student{}))
	// An empty store must serialise as [], not null.
	assert.Equal(t, "[]\n", out.String())
}

func TestValidationError_Messages(t *testing.T) {
	err := validator.New().Struct(types.Student{Grade: "A"})
	require.Error(t, err)

	msg := ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, msg, "field Name is required")
	assert.Contains(t, msg, "field Email is required")
	assert.NotContains(t, msg, "Grade")
}
