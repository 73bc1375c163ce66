package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/gtd/internal/models"
	taskservice "github.com/thenoetrevino/gtd/internal/services/task"
	"github.com/thenoetrevino/gtd/internal/types"
)

// handleListTasks serves GET /api/tasks with its query filters
func (s *Server) handleListTasks(c *gin.Context) {
	var errs models.ValidationErrors
	req := taskservice.ListTasksRequest{
		UserID:     currentUser(c),
		SystemList: c.Query("systemList"),
		ProjectID:  queryInt(c, "projectId", &errs),
		LabelID:    queryInt(c, "labelId", &errs),
		Status:     c.Query("status"),
		Archived:   queryBool(c, "archived", &errs),
		View:       c.Query("view"),
	}
	if err := errs.Err(); err != nil {
		respondError(c, err)
		return
	}

	list, err := s.app.TaskService.ListTasks(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskListResponse(list))
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := s.app.TaskService.GetTask(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var body createTaskBody
	if !bindJSON(c, &body) {
		return
	}

	task, err := s.app.TaskService.CreateTask(c.Request.Context(), taskservice.CreateTaskRequest{
		UserID:      currentUser(c),
		Name:        body.Name,
		Description: body.Description,
		Priority:    deref(body.Priority),
		SystemList:  deref(body.SystemList),
		DueDate:     deref(body.DueDate),
		ProjectID:   body.ProjectID,
		LabelIDs:    body.LabelIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body updateTaskBody
	if !bindJSON(c, &body) {
		return
	}

	task, err := s.app.TaskService.UpdateTask(c.Request.Context(), taskservice.UpdateTaskRequest{
		UserID:      currentUser(c),
		TaskID:      id,
		Name:        body.Name,
		Description: body.Description,
		Priority:    body.Priority,
		SystemList:  body.SystemList,
		DueDate:     body.DueDate,
		ProjectID:   body.ProjectID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.app.TaskService.DeleteTask(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCompleteTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := s.app.TaskService.CompleteTask(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleReopenTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := s.app.TaskService.ReopenTask(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleReorderTasks(c *gin.Context) {
	var body reorderBody
	if !bindJSON(c, &body) {
		return
	}

	err := s.app.TaskService.ReorderTasks(c.Request.Context(), taskservice.ReorderTasksRequest{
		UserID:     currentUser(c),
		SystemList: body.SystemList,
		TaskIDs:    body.TaskIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAttachLabel(c *gin.Context) {
	s.changeLabel(c, s.app.TaskService.AttachLabel)
}

func (s *Server) handleDetachLabel(c *gin.Context) {
	s.changeLabel(c, s.app.TaskService.DetachLabel)
}

// changeLabel runs an attach or detach for the task and label in the path
func (s *Server) changeLabel(c *gin.Context, op func(ctx context.Context, userID types.UserID, taskID, labelID int) error) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	labelID, ok := pathID(c, "labelId")
	if !ok {
		return
	}
	if err := op(c.Request.Context(), currentUser(c), taskID, labelID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
