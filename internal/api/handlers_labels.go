package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	labelservice "github.com/thenoetrevino/gtd/internal/services/label"
)

func (s *Server) handleListLabels(c *gin.Context) {
	labels, err := s.app.LabelService.ListLabels(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]labelResponse, len(labels))
	for i, l := range labels {
		out[i] = toLabelResponse(l)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetLabel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	label, err := s.app.LabelService.GetLabel(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLabelResponse(label))
}

func (s *Server) handleCreateLabel(c *gin.Context) {
	var body createLabelBody
	if !bindJSON(c, &body) {
		return
	}
	label, err := s.app.LabelService.CreateLabel(c.Request.Context(), labelservice.CreateLabelRequest{
		UserID: currentUser(c),
		Name:   body.Name,
		Color:  body.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLabelResponse(label))
}

func (s *Server) handleUpdateLabel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body updateLabelBody
	if !bindJSON(c, &body) {
		return
	}
	label, err := s.app.LabelService.UpdateLabel(c.Request.Context(), labelservice.UpdateLabelRequest{
		UserID: currentUser(c),
		ID:     id,
		Name:   body.Name,
		Color:  body.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLabelResponse(label))
}

func (s *Server) handleDeleteLabel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.app.LabelService.DeleteLabel(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
