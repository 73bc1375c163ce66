package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/gtd/internal/database"
	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/testutil"
	"github.com/thenoetrevino/gtd/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var fixedNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

// setupService returns a service with a frozen clock and a fresh owner
func setupService(t *testing.T) (*service, *database.Repository, types.UserID) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	userID := testutil.CreateTestUser(t, repo, "owner@example.com")
	svc := &service{repo: repo, now: func() time.Time { return fixedNow }}
	return svc, repo, userID
}

func mustCreate(t *testing.T, svc *service, req CreateTaskRequest) *models.TaskDetail {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), req)
	require.NoError(t, err)
	return task
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.ErrorIs(t, err, models.ErrValidation)
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		assert.Contains(t, verrs.Fields(), field)
		return
	}
	var ferr *models.FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, field, ferr.Field)
}

func listIDs(t *testing.T, svc *service, req ListTasksRequest) []int {
	t.Helper()
	list, err := svc.ListTasks(context.Background(), req)
	require.NoError(t, err)
	ids := make([]int, len(list.Tasks))
	for i, d := range list.Tasks {
		ids[i] = d.ID
	}
	assert.Equal(t, len(ids), list.TotalCount)
	return ids
}

func ptr[T any](v T) *T { return &v }

// ============================================================================
// CREATE
// ============================================================================

func TestCreateTask_Defaults(t *testing.T) {
	t.Parallel()
	svc, _, userID := setupService(t)

	first := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "  Buy milk  "})

	assert.Equal(t, "Buy milk", first.Name)
	assert.Equal(t, models.TaskStatusOpen, first.Status)
	assert.Equal(t, models.SystemListInbox, first.SystemList)
	require.NotNil(t, first.Priority)
	assert.Equal(t, models.PriorityP4, *first.Priority)
	assert.False(t, first.IsArchived)
	assert.Nil(t, first.CompletedAt)
	assert.Equal(t, 0, first.SortOrder)
	assert.NotNil(t, first.Labels)

	second := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "Eggs"})
	assert.Equal(t, 1, second.SortOrder, "new tasks go to the tail of the list")

	other := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "Call mom", SystemList: "next"})
	assert.Equal(t, models.SystemListNext, other.SystemList)
	assert.Equal(t, 0, other.SortOrder, "sort order is per list")
}

func TestCreateTask_Validation(t *testing.T) {
	t.Parallel()
	svc, _, userID := setupService(t)

	long := make([]rune, models.MaxTaskNameLength+1)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name  string
		req   CreateTaskRequest
		field string
	}{
		{"empty name", CreateTaskRequest{Name: "   "}, "name"},
		{"long name", CreateTaskRequest{Name: string(long)}, "name"},
		{"bad priority", CreateTaskRequest{Name: "x", Priority: "P9"}, "priority"},
		{"bad list", CreateTaskRequest{Name: "x", SystemList: "Later"}, "systemList"},
		{"bad due date", CreateTaskRequest{Name: "x", DueDate: "next tuesday"}, "dueDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.UserID = userID
			_, err := svc.CreateTask(context.Background(), tt.req)
			requireFieldError(t, err, tt.field)
		})
	}
}

func TestCreateTask_DueDateFormats(t *testing.T) {
	t.Parallel()
	svc, _, userID := setupService(t)

	dateOnly := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "a", DueDate: "2026-04-01"})
	require.NotNil(t, dateOnly.DueDate)
	assert.True(t, dateOnly.DueDate.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))

	withZone := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "b", DueDate: "2026-04-01T10:00:00+02:00"})
	require.NotNil(t, withZone.DueDate)
	assert.True(t, withZone.DueDate.Equal(time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)))
}

func TestCreateTask_ForeignProjectOrLabelRollsBack(t *testing.T) {
	t.Parallel()
	svc, repo, userID := setupService(t)
	intruder := testutil.CreateTestUser(t, repo, "intruder@example.com")
	foreignProject := testutil.CreateTestProject(t, repo, intruder, "Theirs")
	foreignLabel := testutil.CreateTestLabel(t, repo, intruder, "theirs", "")
	ownLabel := testutil.CreateTestLabel(t, repo, userID, "mine", "")

	_, err := svc.CreateTask(context.Background(), CreateTaskRequest{UserID: userID, Name: "x", ProjectID: &foreignProject})
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.CreateTask(context.Background(), CreateTaskRequest{UserID: userID, Name: "x", LabelIDs: []int{ownLabel, foreignLabel}})
	assert.ErrorIs(t, err, ErrLabelNotFound)

	assert.Empty(t, listIDs(t, svc, ListTasksRequest{UserID: userID, Status: "All"}))
}

func TestCreateTask_WithProjectAndLabels(t *testing.T) {
	t.Parallel()
	svc, repo, userID := setupService(t)
	projectID := testutil.CreateTestProject(t, repo, userID, "Kitchen")
	b := testutil.CreateTestLabel(t, repo, userID, "b-label", "#112233")
	a := testutil.CreateTestLabel(t, repo, userID, "a-label", "")

	task := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "Fix tap", ProjectID: &projectID, LabelIDs: []int{b, a}})

	require.NotNil(t, task.ProjectName)
	assert.Equal(t, "Kitchen", *task.ProjectName)
	require.Len(t, task.Labels, 2)
	assert.Equal(t, "a-label", task.Labels[0].Name)
	assert.Equal(t, "b-label", task.Labels[1].Name)
}

// ============================================================================
// UPDATE
// ============================================================================

func TestUpdateTask_PartialFields(t *testing.T) {
	t.Parallel()
	svc, repo, userID := setupService(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, userID, "Home")

	created := mustCreate(t, svc, CreateTaskRequest{
		UserID:      userID,
		Name:        "Paint fence",
		Description: ptr("white"),
		Priority:    "P2",
		DueDate:     "2026-03-20",
		ProjectID:   &projectID,
	})

	renamed, err := svc.UpdateTask(ctx, UpdateTaskRequest{UserID: userID, TaskID: created.ID, Name: types.Some("Paint the fence")})
	require.NoError(t, err)
	assert.Equal(t, "Paint the fence", renamed.Name)
	assert.Equal(t, "white", *renamed.Description, "absent fields are untouched")
	assert.Equal(t, models.PriorityP2, *renamed.Priority)
	assert.NotNil(t, renamed.DueDate)
	assert.Equal(t, &projectID, renamed.ProjectID)

	cleared, err := svc.UpdateTask(ctx, UpdateTaskRequest{
		UserID:      userID,
		TaskID:      created.ID,
		Description: types.Null[string](),
		Priority:    types.Null[string](),
		DueDate:     types.Null[string](),
		ProjectID:   types.Null[int](),
	})
	require.NoError(t, err)
	assert.Equal(t, "Paint the fence", cleared.Name)
	assert.Nil(t, cleared.Description)
	assert.Nil(t, cleared.Priority)
	assert.Nil(t, cleared.DueDate)
	assert.Nil(t, cleared.ProjectID)
	assert.Nil(t, cleared.ProjectName)
}

func TestUpdateTask_RejectsNullRequiredFields(t *testing.T) {
	t.Parallel()
	svc, _, userID := setupService(t)
	created := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "x"})

	_, err := svc.UpdateTask(context.Background(), UpdateTaskRequest{UserID: userID, TaskID: created.ID, Name: types.Null[string]()})
	requireFieldError(t, err, "name")

	_, err = svc.UpdateTask(context.Background(), UpdateTaskRequest{UserID: userID, TaskID: created.ID, SystemList: types.Null[string]()})
	requireFieldError(t, err, "systemList")

	_, err = svc.UpdateTask(context.Background(), UpdateTaskRequest{UserID: userID, TaskID: created.ID, Priority: types.Some("urgent")})
	requireFieldError(t, err, "priority")
}

func TestUpdateTask_MoveListAppendsToTail(t *testing.T) {
	t.Parallel()
	svc, _, userID := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "n1", SystemList: "Next"})
	mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "n2", SystemList: "Next"})
	inbox := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "i1"})

	moved, err := svc.UpdateTask(ctx, UpdateTaskRequest{UserID: userID, TaskID: inbox.ID, SystemList: types.Some("NEXT")})
	require.NoError(t, err)
	assert.Equal(t, models.SystemListNext, moved.SystemList)
	assert.Equal(t, 2, moved.SortOrder)

	same, err := svc.UpdateTask(ctx, UpdateTaskRequest{UserID: userID, TaskID: inbox.ID, SystemList: types.Some("Next")})
	require.NoError(t, err)
	assert.Equal(t, 2, same.SortOrder, "staying in the same list keeps the position")
}

func TestUpdateTask_OwnershipChecks(t *testing.T) {
	t.Parallel()
	svc, repo, userID := setupService(t)
	intruder := testutil.CreateTestUser(t, repo, "intruder@example.com")
	foreignProject := testutil.CreateTestProject(t, repo, intruder, "Theirs")
	created := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "x"})

	_, err := svc.UpdateTask(context.Background(), UpdateTaskRequest{UserID: intruder, TaskID: created.ID, Name: types.Some("mine now")})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.UpdateTask(context.Background(), UpdateTaskRequest{UserID: userID, TaskID: created.ID, ProjectID: types.Some(foreignProject)})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

// ============================================================================
// LIFECYCLE
// ============================================================================

func TestCompleteReopen_RoundTrip(t *testing.T) {
	t.Parallel()
	svc, _, userID := setupService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, CreateTaskRequest{
		UserID:      userID,
		Name:        "Write report",
		Description: ptr("quarterly"),
		Priority:    "P1",
		SystemList:  "Someday",
	})

	done, err := svc.CompleteTask(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, done.Status)
	assert.True(t, done.IsArchived)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(fixedNow))

	again, err := svc.CompleteTask(ctx, userID, created.ID)
	require.NoError(t, err, "complete is idempotent")
	assert.Equal(t, models.TaskStatusDone, again.Status)
	assert.True(t, again.CompletedAt.Equal(fixedNow))

	reopened, err := svc.ReopenTask(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusOpen, reopened.Status)
	assert.False(t, reopened.IsArchived)
	assert.Nil(t, reopened.CompletedAt)
	assert.Equal(t, 0, reopened.SortOrder)

	assert.Equal(t, created.Name, reopened.Name)
	assert.Equal(t, created.Description, reopened.Description)
	assert.Equal(t, created.Priority, reopened.Priority)
	assert.Equal(t, created.SystemList, reopened.SystemList)
	assert.WithinDuration(t, created.CreatedAt, reopened.CreatedAt, time.Second)

	stillOpen, err := svc.ReopenTask(ctx, userID, created.ID)
	require.NoError(t, err, "reopening an open task is a no-op")
	assert.Equal(t, models.TaskStatusOpen, stillOpen.Status)
}

func TestReopenTask_MovesToTopOfList(t *testing.T) {
	t.Parallel()
	svc, _, userID := setupService(t)
	ctx := context.Background()

	a := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "a", SystemList: "Next"})
	b := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "b", SystemList: "Next"})
	c := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "c", SystemList: "Next"})

	_, err := svc.CompleteTask(ctx, userID, c.ID)
	require.NoError(t, err)
	_, err = svc.ReopenTask(ctx, userID, c.ID)
	require.NoError(t, err)

	assert.Equal(t, []int{c.ID, a.ID, b.ID}, listIDs(t, svc, ListTasksRequest{UserID: userID, SystemList: "Next"}))
}

func TestDeleteTask_SecondDeleteIsNotFound(t *testing.T) {
	t.Parallel()
	svc, repo, userID := setupService(t)
	ctx := context.Background()
	intruder := testutil.CreateTestUser(t, repo, "intruder@example.com")
	created := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "x"})

	assert.ErrorIs(t, svc.DeleteTask(ctx, intruder, created.ID), ErrTaskNotFound)
	require.NoError(t, svc.DeleteTask(ctx, userID, created.ID))
	assert.ErrorIs(t, svc.DeleteTask(ctx, userID, created.ID), ErrTaskNotFound)

	_, err := svc.GetTask(ctx, userID, created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// ============================================================================
// REORDER
// ============================================================================

func TestReorderTasks(t *testing.T) {
	t.Parallel()
	svc, repo, userID := setupService(t)
	ctx := context.Background()
	intruder := testutil.CreateTestUser(t, repo, "intruder@example.com")

	a := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "a", SystemList: "Next"})
	b := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "b", SystemList: "Next"})
	c := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "c", SystemList: "Next"})
	inbox := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "inbox"})
	foreign := testutil.CreateTestTask(t, repo, intruder, models.SystemListNext, "foreign")

	original := []int{a.ID, b.ID, c.ID}
	next := ListTasksRequest{UserID: userID, SystemList: "Next"}

	t.Run("wrong list leaves order unchanged", func(t *testing.T) {
		err := svc.ReorderTasks(ctx, ReorderTasksRequest{UserID: userID, SystemList: "Next", TaskIDs: []int{c.ID, inbox.ID, a.ID, b.ID}})
		requireFieldError(t, err, "taskIds")
		assert.Equal(t, original, listIDs(t, svc, next))
	})

	t.Run("foreign id is not found", func(t *testing.T) {
		err := svc.ReorderTasks(ctx, ReorderTasksRequest{UserID: userID, SystemList: "Next", TaskIDs: []int{c.ID, foreign, a.ID, b.ID}})
		assert.ErrorIs(t, err, ErrTaskNotFound)
		assert.Equal(t, original, listIDs(t, svc, next))
	})

	t.Run("duplicates", func(t *testing.T) {
		err := svc.ReorderTasks(ctx, ReorderTasksRequest{UserID: userID, SystemList: "Next", TaskIDs: []int{a.ID, a.ID}})
		requireFieldError(t, err, "taskIds")
	})

	t.Run("empty", func(t *testing.T) {
		err := svc.ReorderTasks(ctx, ReorderTasksRequest{UserID: userID, SystemList: "Next"})
		requireFieldError(t, err, "taskIds")
	})

	t.Run("bad list name", func(t *testing.T) {
		err := svc.ReorderTasks(ctx, ReorderTasksRequest{UserID: userID, SystemList: "Later", TaskIDs: []int{a.ID}})
		requireFieldError(t, err, "systemList")
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.ReorderTasks(ctx, ReorderTasksRequest{UserID: userID, SystemList: "Next", TaskIDs: []int{c.ID, a.ID, b.ID}}))
		assert.Equal(t, []int{c.ID, a.ID, b.ID}, listIDs(t, svc, next))

		got, err := svc.GetTask(ctx, userID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.SortOrder)
	})
}

// ============================================================================
// LABELS
// ============================================================================

func TestAttachDetachLabel_Idempotent(t *testing.T) {
	t.Parallel()
	svc, repo, userID := setupService(t)
	ctx := context.Background()
	labelID := testutil.CreateTestLabel(t, repo, userID, "errand", "#FF0000")
	task := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "x"})

	require.NoError(t, svc.AttachLabel(ctx, userID, task.ID, labelID))
	require.NoError(t, svc.AttachLabel(ctx, userID, task.ID, labelID))

	got, err := svc.GetTask(ctx, userID, task.ID)
	require.NoError(t, err)
	require.Len(t, got.Labels, 1)
	assert.Equal(t, "errand", got.Labels[0].Name)

	require.NoError(t, svc.DetachLabel(ctx, userID, task.ID, labelID))
	require.NoError(t, svc.DetachLabel(ctx, userID, task.ID, labelID))

	got, err = svc.GetTask(ctx, userID, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Labels)
}

func TestAttachLabel_Ownership(t *testing.T) {
	t.Parallel()
	svc, repo, userID := setupService(t)
	ctx := context.Background()
	intruder := testutil.CreateTestUser(t, repo, "intruder@example.com")
	foreignLabel := testutil.CreateTestLabel(t, repo, intruder, "theirs", "")
	ownLabel := testutil.CreateTestLabel(t, repo, userID, "mine", "")
	task := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "x"})

	assert.ErrorIs(t, svc.AttachLabel(ctx, userID, task.ID, foreignLabel), ErrLabelNotFound)
	assert.ErrorIs(t, svc.AttachLabel(ctx, intruder, task.ID, foreignLabel), ErrTaskNotFound)
	assert.ErrorIs(t, svc.DetachLabel(ctx, userID, 999, ownLabel), ErrTaskNotFound)
}

// ============================================================================
// QUERIES
// ============================================================================

func TestListTasks_StatusDefaults(t *testing.T) {
	t.Parallel()
	svc, _, userID := setupService(t)
	ctx := context.Background()

	open := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "open"})
	done := mustCreate(t, svc, CreateTaskRequest{UserID: userID, Name: "done"})
	_, err := svc.CompleteTask(ctx, userID, done.ID)
	require.NoError(t, err)

	assert.Equal(t, []int{open.ID}, listIDs(t, svc, ListTasksRequest{UserID: userID}))
	assert.Equal(t, []int{done.ID}, listIDs(t, svc, ListTasksRequest{UserID: userID, Archived: ptr(true)}))
	assert.Equal(t, []int{open.ID, done.ID}, listIDs(t, svc, ListTasksRequest{UserID: userID, Status: "all"}))
	assert.Empty(t, listIDs(t, svc, ListTasksRequest{UserID: userID, Status: "Done", Archived: ptr(false)}))
}

func TestListTasks_Validation(t *testing.T) {
	t.Parallel()
	svc, _, userID := setupService(t)

	tests := []struct {
		name  string
		req   ListTasksRequest
		field string
	}{
		{"status", ListTasksRequest{Status: "Closed"}, "status"},
		{"system list", ListTasksRequest{SystemList: "Later"}, "systemList"},
		{"view", ListTasksRequest{View: "calendar"}, "view"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.UserID = userID
			_, err := svc.ListTasks(context.Background(), tt.req)
			requireFieldError(t, err, tt.field)
		})
	}
}

func TestListTasks_UpcomingView(t *testing.T) {
	t.Parallel()
	svc, repo, userID := setupService(t)
	ctx := context.Background()

	day := func(offset int, hour int) *time.Time {
		d := time.Date(2026, 3, 10+offset, hour, 0, 0, 0, time.UTC)
		return &d
	}

	inWindowEdge := testutil.CreateTestTaskDue(t, repo, userID, models.SystemListNext, "day 14", day(14, 23))
	testutil.CreateTestTaskDue(t, repo, userID, models.SystemListNext, "day 15", day(15, 0))
	undatedUpcoming := testutil.CreateTestTask(t, repo, userID, models.SystemListUpcoming, "someday soon")
	oldOverdue := testutil.CreateTestTaskDue(t, repo, userID, models.SystemListInbox, "very late", day(-9, 9))
	recentOverdue := testutil.CreateTestTaskDue(t, repo, userID, models.SystemListSomeday, "a bit late", day(0, 8))
	laterToday := testutil.CreateTestTaskDue(t, repo, userID, models.SystemListInbox, "later today", day(0, 20))
	doneDue := testutil.CreateTestTaskDue(t, repo, userID, models.SystemListInbox, "done", day(1, 9))
	testutil.CreateTestTask(t, repo, userID, models.SystemListNext, "undated next")

	_, err := svc.CompleteTask(ctx, userID, doneDue)
	require.NoError(t, err)

	got := listIDs(t, svc, ListTasksRequest{UserID: userID, View: "upcoming", SystemList: "Next"})
	assert.Equal(t, []int{oldOverdue, recentOverdue, laterToday, inWindowEdge, undatedUpcoming}, got)
}
