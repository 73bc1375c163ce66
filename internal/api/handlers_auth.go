package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authservice "github.com/thenoetrevino/gtd/internal/services/auth"
)

func (s *Server) handleRegister(c *gin.Context) {
	var body registerBody
	if !bindJSON(c, &body) {
		return
	}

	session, err := s.app.AuthService.Register(c.Request.Context(), authservice.RegisterRequest{
		Email:       body.Email,
		Password:    body.Password,
		DisplayName: body.DisplayName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(session))
}

func (s *Server) handleLogin(c *gin.Context) {
	var body loginBody
	if !bindJSON(c, &body) {
		return
	}

	session, err := s.app.AuthService.Login(c.Request.Context(), authservice.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.app.AuthService.Me(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func toSessionResponse(session *authservice.Session) sessionResponse {
	return sessionResponse{
		Token:     session.Token,
		ExpiresAt: formatTime(session.ExpiresAt),
		User:      toUserResponse(session.User),
	}
}
