package models

import (
	"fmt"
	"strings"
)

// ============================================================================
// SYSTEM LIST
// ============================================================================

// SystemList is one of the four fixed GTD buckets a task belongs to
type SystemList string

const (
	SystemListInbox    SystemList = "Inbox"
	SystemListNext     SystemList = "Next"
	SystemListUpcoming SystemList = "Upcoming"
	SystemListSomeday  SystemList = "Someday"
)

// SystemLists lists every system list in display order
var SystemLists = []SystemList{SystemListInbox, SystemListNext, SystemListUpcoming, SystemListSomeday}

// ParseSystemList maps a case-insensitive name to its SystemList
func ParseSystemList(s string) (SystemList, error) {
	for _, l := range SystemLists {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid system list '%s' (must be: Inbox, Next, Upcoming, Someday)", s)
}

// ============================================================================
// TASK STATUS
// ============================================================================

// TaskStatus is the completion state of a task
type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "Open"
	TaskStatusDone TaskStatus = "Done"
)

// ParseTaskStatus maps a case-insensitive name to its TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return TaskStatusOpen, nil
	case "done":
		return TaskStatusDone, nil
	}
	return "", fmt.Errorf("invalid status '%s' (must be: Open, Done)", s)
}

// StatusFilter selects tasks by status when listing
type StatusFilter string

const (
	StatusFilterOpen StatusFilter = "Open"
	StatusFilterDone StatusFilter = "Done"
	StatusFilterAll  StatusFilter = "All"
)

// ParseStatusFilter maps a case-insensitive name to its StatusFilter
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusFilterOpen, nil
	case "done":
		return StatusFilterDone, nil
	case "all":
		return StatusFilterAll, nil
	}
	return "", fmt.Errorf("invalid status '%s' (must be: Open, Done, All)", s)
}

// ============================================================================
// PRIORITY
// ============================================================================

// Priority ranks a task from P1 (most urgent) to P4
type Priority string

const (
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
	PriorityP4 Priority = "P4"
)

// DefaultPriority is assigned to new tasks that do not name one
const DefaultPriority = PriorityP4

// ParsePriority maps "p1".."p4" (any case) to its Priority
func ParsePriority(s string) (Priority, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "P1":
		return PriorityP1, nil
	case "P2":
		return PriorityP2, nil
	case "P3":
		return PriorityP3, nil
	case "P4":
		return PriorityP4, nil
	}
	return "", fmt.Errorf("invalid priority '%s' (must be: P1, P2, P3, P4)", s)
}

// ============================================================================
// PROJECT STATUS
// ============================================================================

// ProjectStatus tracks whether a project is still being worked on
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusCompleted ProjectStatus = "Completed"
)

// ParseProjectStatus maps a case-insensitive name to its ProjectStatus
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return ProjectStatusActive, nil
	case "completed":
		return ProjectStatusCompleted, nil
	}
	return "", fmt.Errorf("invalid project status '%s' (must be: Active, Completed)", s)
}

// ============================================================================
// LIMITS
// ============================================================================

const (
	MaxTaskNameLength    = 500
	MaxDescriptionLength = 4000
	MaxProjectNameLength = 200
	MaxLabelNameLength   = 50
	MaxDisplayNameLength = 120
	MinPasswordLength    = 8

	// UpcomingWindowDays is how many calendar days ahead the Upcoming view looks
	UpcomingWindowDays = 14
)
