package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// healthPingTimeout bounds the database check so a stuck pool cannot hang
// the probe
const healthPingTimeout = 2 * time.Second

// handleHealth reports database reachability and the request counters
func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	snap := s.metrics.Snapshot()
	resp := healthResponse{
		Status:         "healthy",
		Database:       "ok",
		UptimeSeconds:  snap.UptimeSeconds,
		RequestsTotal:  snap.RequestsTotal,
		RequestsFailed: snap.RequestsFailed,
	}

	if err := s.app.Ping(ctx); err != nil {
		s.app.Logger.Warn("health check failed", "error", err)
		resp.Status = "unhealthy"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
