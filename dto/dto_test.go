package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateTaskFieldsOmitsAbsentKeys(t *testing.T) {
	req := CreateTaskRequest{Title: "Buy milk"}
	fields := req.Fields()

	assert.Equal(t, map[string]interface{}{"title": "Buy milk"}, fields,
		"absent optional keys must not appear, so a merge write leaves them untouched")
}

func TestCreateTaskFieldsIncludesProvided(t *testing.T) {
	req := CreateTaskRequest{
		Title:       "Buy milk",
		Priority:    strPtr("high"),
		IsCompleted: boolPtr(false),
		CreatedAt:   strPtr("2025-01-01T00:00:00Z"),
	}
	fields := req.Fields()

	assert.Equal(t, "high", fields["priority"])
	assert.Equal(t, false, fields["isCompleted"], "an explicit false is a value, not an omission")
	assert.Equal(t, "2025-01-01T00:00:00Z", fields["createdAt"])
	assert.NotContains(t, fields, "dueDate")
}

func TestUpdateTaskFieldsAllOptional(t *testing.T) {
	req := UpdateTaskRequest{}
	assert.Empty(t, req.Fields())

	req.Title = strPtr("renamed")
	assert.Equal(t, map[string]interface{}{"title": "renamed"}, req.Fields())
}

func TestValidationErrorFieldMapping(t *testing.T) {
	var req CreateTaskRequest
	err := binding.JSON.BindBody([]byte(`{"priority":"urgent"}`), &req)
	require.Error(t, err)

	resp := ValidationError(err)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "is required", fields["title"])
	assert.Contains(t, fields["priority"], "must be one of:")
}

func TestValidationErrorNonBindingFailure(t *testing.T) {
	var req CreateTaskRequest
	err := binding.JSON.BindBody([]byte(`{not json`), &req)
	require.Error(t, err)

	resp := ValidationError(err)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
}

func TestToggleHabitDateKeyFormat(t *testing.T) {
	var req ToggleHabitRequest
	err := binding.JSON.BindBody([]byte(`{"dateKey":"2026-13-99"}`), &req)
	require.Error(t, err)

	resp := ValidationError(err)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "dateKey", resp.Error.Details[0].Field)
	assert.Contains(t, resp.Error.Details[0].Message, "2006-01-02")

	err = binding.JSON.BindBody([]byte(`{"dateKey":"2026-03-04"}`), &req)
	assert.NoError(t, err)
}

func TestNotFoundErrorEnvelope(t *testing.T) {
	resp := NotFoundError("Task not found")
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Task not found", resp.Error.Message)
	assert.Empty(t, resp.Error.Details)
}
