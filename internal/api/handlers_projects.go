package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	projectservice "github.com/thenoetrevino/gtd/internal/services/project"
)

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.app.ProjectService.ListProjects(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	project, err := s.app.ProjectService.GetProject(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var body createProjectBody
	if !bindJSON(c, &body) {
		return
	}
	project, err := s.app.ProjectService.CreateProject(c.Request.Context(), projectservice.CreateProjectRequest{
		UserID:      currentUser(c),
		Name:        body.Name,
		Description: body.Description,
		DueDate:     deref(body.DueDate),
		Status:      deref(body.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProjectResponse(project))
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body updateProjectBody
	if !bindJSON(c, &body) {
		return
	}
	project, err := s.app.ProjectService.UpdateProject(c.Request.Context(), projectservice.UpdateProjectRequest{
		UserID:      currentUser(c),
		ID:          id,
		Name:        body.Name,
		Description: body.Description,
		DueDate:     body.DueDate,
		Status:      body.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.app.ProjectService.DeleteProject(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
