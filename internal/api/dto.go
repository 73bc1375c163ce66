package api

import (
	"time"

	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// ============================================================================
// REQUEST BODIES
// ============================================================================

type registerBody struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTaskBody struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	SystemList  *string `json:"systemList"`
	DueDate     *string `json:"dueDate"`
	ProjectID   *int    `json:"projectId"`
	LabelIDs    []int   `json:"labelIds"`
}

type updateTaskBody struct {
	Name        types.Optional[string] `json:"name"`
	Description types.Optional[string] `json:"description"`
	Priority    types.Optional[string] `json:"priority"`
	SystemList  types.Optional[string] `json:"systemList"`
	DueDate     types.Optional[string] `json:"dueDate"`
	ProjectID   types.Optional[int]    `json:"projectId"`
}

type reorderBody struct {
	SystemList string `json:"systemList"`
	TaskIDs    []int  `json:"taskIds"`
}

type createLabelBody struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type updateLabelBody struct {
	Name  types.Optional[string] `json:"name"`
	Color types.Optional[string] `json:"color"`
}

type createProjectBody struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status"`
}

type updateProjectBody struct {
	Name        types.Optional[string] `json:"name"`
	Description types.Optional[string] `json:"description"`
	DueDate     types.Optional[string] `json:"dueDate"`
	Status      types.Optional[string] `json:"status"`
}

// ============================================================================
// RESPONSES
// ============================================================================

type userResponse struct {
	ID          types.UserID `json:"id"`
	Email       string       `json:"email"`
	DisplayName string       `json:"displayName"`
	CreatedAt   string       `json:"createdAt"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
	User      userResponse `json:"user"`
}

type labelSummaryResponse struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type taskResponse struct {
	ID          int                    `json:"id"`
	Name        string                 `json:"name"`
	Description *string                `json:"description"`
	Priority    *models.Priority       `json:"priority"`
	Status      models.TaskStatus      `json:"status"`
	SystemList  models.SystemList      `json:"systemList"`
	DueDate     *string                `json:"dueDate"`
	ProjectID   *int                   `json:"projectId"`
	ProjectName *string                `json:"projectName"`
	SortOrder   int                    `json:"sortOrder"`
	IsArchived  bool                   `json:"isArchived"`
	CompletedAt *string                `json:"completedAt"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
	Labels      []labelSummaryResponse `json:"labels"`
}

type taskListResponse struct {
	Tasks      []taskResponse `json:"tasks"`
	TotalCount int            `json:"totalCount"`
}

type labelResponse struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Color     *string `json:"color"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type projectResponse struct {
	ID            int                  `json:"id"`
	Name          string               `json:"name"`
	Description   *string              `json:"description"`
	DueDate       *string              `json:"dueDate"`
	Status        models.ProjectStatus `json:"status"`
	SortOrder     int                  `json:"sortOrder"`
	OpenTaskCount int                  `json:"openTaskCount"`
	CreatedAt     string               `json:"createdAt"`
	UpdatedAt     string               `json:"updatedAt"`
}

type healthResponse struct {
	Status         string `json:"status"`
	Database       string `json:"database"`
	UptimeSeconds  int64  `json:"uptimeSeconds"`
	RequestsTotal  int64  `json:"requestsTotal"`
	RequestsFailed int64  `json:"requestsFailed"`
}

// ============================================================================
// CONVERTERS
// ============================================================================

// formatTime renders t as RFC 3339 in UTC
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   formatTime(u.CreatedAt),
	}
}

func toTaskResponse(d *models.TaskDetail) taskResponse {
	labels := make([]labelSummaryResponse, len(d.Labels))
	for i, l := range d.Labels {
		labels[i] = labelSummaryResponse{ID: l.ID, Name: l.Name, Color: l.Color}
	}
	return taskResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Priority:    d.Priority,
		Status:      d.Status,
		SystemList:  d.SystemList,
		DueDate:     formatTimePtr(d.DueDate),
		ProjectID:   d.ProjectID,
		ProjectName: d.ProjectName,
		SortOrder:   d.SortOrder,
		IsArchived:  d.IsArchived,
		CompletedAt: formatTimePtr(d.CompletedAt),
		CreatedAt:   formatTime(d.CreatedAt),
		UpdatedAt:   formatTime(d.UpdatedAt),
		Labels:      labels,
	}
}

func toTaskListResponse(list *models.TaskList) taskListResponse {
	tasks := make([]taskResponse, len(list.Tasks))
	for i, d := range list.Tasks {
		tasks[i] = toTaskResponse(d)
	}
	return taskListResponse{Tasks: tasks, TotalCount: list.TotalCount}
}

func toLabelResponse(l *models.Label) labelResponse {
	return labelResponse{
		ID:        l.ID,
		Name:      l.Name,
		Color:     l.Color,
		CreatedAt: formatTime(l.CreatedAt),
		UpdatedAt: formatTime(l.UpdatedAt),
	}
}

func toProjectResponse(p *models.ProjectSummary) projectResponse {
	return projectResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		DueDate:       formatTimePtr(p.DueDate),
		Status:        p.Status,
		SortOrder:     p.SortOrder,
		OpenTaskCount: p.OpenTaskCount,
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
}

// deref returns the pointed-to string or ""
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
