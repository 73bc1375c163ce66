// Package api exposes the services over a JSON HTTP API built on gin.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/gtd/internal/app"
)

// Server is the gtd HTTP server
type Server struct {
	app     *app.App
	router  *gin.Engine
	metrics *Metrics
}

// NewServer creates the router and registers every route
func NewServer(a *app.App) *Server {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	metrics := NewMetrics()

	s := &Server{
		app:     a,
		router:  router,
		metrics: metrics,
	}

	router.Use(requestID(), requestLogger(a.Logger, metrics), recovery(a.Logger))
	router.NoRoute(func(c *gin.Context) {
		abortWith(c, http.StatusNotFound, errorResponse{Message: "route not found"})
	})

	api := router.Group("/api")
	api.GET("/health", s.handleHealth)

	auth := api.Group("/auth")
	{
		auth.POST("/register", s.handleRegister)
		auth.POST("/login", s.handleLogin)
		auth.GET("/me", requireAuth(a.AuthService), s.handleMe)
	}

	protected := api.Group("", requireAuth(a.AuthService))

	tasks := protected.Group("/tasks")
	{
		tasks.GET("", s.handleListTasks)
		tasks.POST("", s.handleCreateTask)
		tasks.PATCH("/reorder", s.handleReorderTasks)
		tasks.GET("/:id", s.handleGetTask)
		tasks.PUT("/:id", s.handleUpdateTask)
		tasks.DELETE("/:id", s.handleDeleteTask)
		tasks.PATCH("/:id/complete", s.handleCompleteTask)
		tasks.PATCH("/:id/reopen", s.handleReopenTask)
		tasks.POST("/:id/labels/:labelId", s.handleAttachLabel)
		tasks.DELETE("/:id/labels/:labelId", s.handleDetachLabel)
	}

	labels := protected.Group("/labels")
	{
		labels.GET("", s.handleListLabels)
		labels.POST("", s.handleCreateLabel)
		labels.GET("/:id", s.handleGetLabel)
		labels.PUT("/:id", s.handleUpdateLabel)
		labels.DELETE("/:id", s.handleDeleteLabel)
	}

	projects := protected.Group("/projects")
	{
		projects.GET("", s.handleListProjects)
		projects.POST("", s.handleCreateProject)
		projects.GET("/:id", s.handleGetProject)
		projects.PUT("/:id", s.handleUpdateProject)
		projects.DELETE("/:id", s.handleDeleteProject)
	}

	return s
}

// Handler returns the router for use in an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the live request counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}
