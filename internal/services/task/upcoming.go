package task

import (
	"cmp"
	"slices"
	"time"

	"github.com/thenoetrevino/gtd/internal/models"
)

// upcomingCutoff is the first instant after the Upcoming window: midnight
// UTC at the start of the day after the last included calendar day
func upcomingCutoff(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, models.UpcomingWindowDays+1)
}

// SelectUpcoming reduces open candidates to the Upcoming view.
//
// A task is kept when it sits in the Upcoming list (with or without a due
// date) or when it is due before the cutoff, overdue tasks included.
// Overdue tasks come first, oldest first, then the rest by due date with
// undated tasks last. Ties fall back to the manual sort order.
func SelectUpcoming(candidates []*models.Task, now time.Time) []*models.Task {
	cutoff := upcomingCutoff(now)

	selected := make([]*models.Task, 0, len(candidates))
	for _, t := range candidates {
		if t.IsDone() || t.IsArchived {
			continue
		}
		inWindow := t.DueDate != nil && t.DueDate.Before(cutoff)
		if t.SystemList == models.SystemListUpcoming || inWindow {
			selected = append(selected, t)
		}
	}

	slices.SortStableFunc(selected, func(a, b *models.Task) int {
		if c := cmpOverdue(a, b, now); c != 0 {
			return c
		}
		if c := cmpDue(a, b); c != 0 {
			return c
		}
		if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return selected
}

func isOverdue(t *models.Task, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}

// cmpOverdue puts overdue tasks ahead of everything else
func cmpOverdue(a, b *models.Task, now time.Time) int {
	ao, bo := isOverdue(a, now), isOverdue(b, now)
	switch {
	case ao && !bo:
		return -1
	case !ao && bo:
		return 1
	}
	return 0
}

// cmpDue orders by due date ascending, undated last
func cmpDue(a, b *models.Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	}
	return a.DueDate.Compare(*b.DueDate)
}
