package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Enum Parsing Tests
// ============================================================================

func TestParseSystemList(t *testing.T) {
	tests := []struct {
		input    string
		expected SystemList
		wantErr  bool
	}{
		{"Inbox", SystemListInbox, false},
		{"inbox", SystemListInbox, false},
		{"NEXT", SystemListNext, false},
		{" upcoming ", SystemListUpcoming, false},
		{"Someday", SystemListSomeday, false},
		{"Later", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSystemList(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseStatusFilter(t *testing.T) {
	for input, expected := range map[string]StatusFilter{
		"open": StatusFilterOpen,
		"Done": StatusFilterDone,
		"ALL":  StatusFilterAll,
	} {
		got, err := ParseStatusFilter(input)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	}

	_, err := ParseStatusFilter("closed")
	assert.EqualError(t, err, "invalid status 'closed' (must be: Open, Done, All)")

	_, err = ParseTaskStatus("all")
	assert.Error(t, err, "All is only a filter, never a task status")
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("p2")
	require.NoError(t, err)
	assert.Equal(t, PriorityP2, got)

	_, err = ParsePriority("P5")
	assert.Error(t, err)
	assert.Equal(t, PriorityP4, DefaultPriority)
}

// ============================================================================
// Task State Tests
// ============================================================================

func TestTask_MarkDoneAndOpen(t *testing.T) {
	task := &Task{Status: TaskStatusOpen, SystemList: SystemListNext}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	task.MarkDone(now)
	assert.True(t, task.IsDone())
	assert.True(t, task.IsArchived)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)

	task.MarkOpen()
	assert.False(t, task.IsDone())
	assert.False(t, task.IsArchived)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, SystemListNext, task.SystemList)
}

// ============================================================================
// Error Tests
// ============================================================================

func TestValidationErrors(t *testing.T) {
	errEmpty := errors.New("name is required")
	errLong := errors.New("description is too long")

	var v ValidationErrors
	assert.NoError(t, v.Err())

	v.Add("name", errEmpty)
	v.Add("description", errLong)
	v.Add("name", errors.New("second"))

	err := v.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, errEmpty)
	assert.ErrorIs(t, err, errLong)
	assert.Equal(t, map[string][]string{
		"name":        {"name is required", "second"},
		"description": {"description is too long"},
	}, v.Fields())
}

func TestFieldError_Wrapped(t *testing.T) {
	sentinel := errors.New("bad color")
	err := fmt.Errorf("create label: %w", NewFieldError("color", sentinel))

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "color", fe.Field)
	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
}
