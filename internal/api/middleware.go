package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thenoetrevino/gtd/internal/models"
	authservice "github.com/thenoetrevino/gtd/internal/services/auth"
	"github.com/thenoetrevino/gtd/internal/types"
)

// Context keys set by the middleware chain
const (
	requestIDKey = "request_id"
	userIDKey    = "user_id"
)

// requestIDHeader is echoed back when the client sends one
const requestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied ids before they reach the logs
const maxRequestIDLength = 128

// requestID tags every request with an id, reusing the client's when present
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request and feeds the metrics counters
func requestLogger(logger *slog.Logger, metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.InFlight.Add(1)

		c.Next()

		metrics.InFlight.Add(-1)
		status := c.Writer.Status()
		metrics.observe(status)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.LogAttrs(c.Request.Context(), level, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// recovery turns a handler panic into the standard 500 envelope
func recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
		)
		abortWith(c, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	})
}

// requireAuth rejects requests without a valid bearer token and stores the
// caller's id for the handlers
func requireAuth(auth authservice.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			respondError(c, errMissingToken)
			return
		}

		userID, err := auth.ParseToken(strings.TrimSpace(token))
		if err != nil {
			respondError(c, err)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// errMissingToken is returned when no bearer token was sent
var errMissingToken = fmt.Errorf("missing bearer token: %w", models.ErrUnauthorized)

// currentUser returns the id stored by requireAuth
func currentUser(c *gin.Context) types.UserID {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(types.UserID)
	return userID
}
