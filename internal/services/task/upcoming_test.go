package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/gtd/internal/models"
)

func TestUpcomingCutoff(t *testing.T) {
	t.Parallel()

	// Morning in a zone ahead of UTC is still the previous UTC day
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2026, 1, 31, 8, 30, 0, 0, loc)

	want := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	assert.True(t, upcomingCutoff(now).Equal(want), "got %s", upcomingCutoff(now))
}

func TestSelectUpcoming(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(days int, hour int) *time.Time {
		d := time.Date(2026, 6, 1+days, hour, 0, 0, 0, time.UTC)
		return &d
	}
	task := func(id int, list models.SystemList, due *time.Time, sortOrder int) *models.Task {
		return &models.Task{ID: id, Status: models.TaskStatusOpen, SystemList: list, DueDate: due, SortOrder: sortOrder}
	}

	done := task(99, models.SystemListUpcoming, at(1, 0), 0)
	done.MarkDone(now)

	tests := []struct {
		name       string
		candidates []*models.Task
		expected   []int
	}{
		{
			name:       "window edges",
			candidates: []*models.Task{task(1, models.SystemListNext, at(14, 23), 0), task(2, models.SystemListNext, at(15, 0), 0)},
			expected:   []int{1},
		},
		{
			name:       "upcoming list without due date",
			candidates: []*models.Task{task(1, models.SystemListUpcoming, nil, 0), task(2, models.SystemListInbox, nil, 0)},
			expected:   []int{1},
		},
		{
			name:       "upcoming list far in the future",
			candidates: []*models.Task{task(1, models.SystemListUpcoming, at(90, 0), 0)},
			expected:   []int{1},
		},
		{
			name: "overdue first oldest first",
			candidates: []*models.Task{
				task(1, models.SystemListInbox, at(2, 0), 0),
				task(2, models.SystemListInbox, at(-1, 0), 0),
				task(3, models.SystemListInbox, at(-30, 0), 0),
				task(4, models.SystemListUpcoming, nil, 0),
				task(5, models.SystemListInbox, at(0, 18), 0),
			},
			expected: []int{3, 2, 5, 1, 4},
		},
		{
			name: "ties by sort order then id",
			candidates: []*models.Task{
				task(3, models.SystemListUpcoming, nil, 1),
				task(1, models.SystemListUpcoming, nil, 1),
				task(2, models.SystemListUpcoming, nil, 0),
				task(5, models.SystemListNext, at(3, 0), 7),
				task(4, models.SystemListNext, at(3, 0), 2),
			},
			expected: []int{4, 5, 2, 1, 3},
		},
		{
			name:       "done tasks never show",
			candidates: []*models.Task{done},
			expected:   []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectUpcoming(tt.candidates, now)
			ids := make([]int, len(got))
			for i, selected := range got {
				ids[i] = selected.ID
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}
