package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.NewValidationError("invalid request body"))
		return
	}

	user, session, err := s.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.setSessionCookie(c, session)
	c.JSON(http.StatusCreated, user.Public())
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.NewValidationError("invalid request body"))
		return
	}

	user, session, err := s.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.setSessionCookie(c, session)
	c.JSON(http.StatusOK, user.Public())
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := s.auth.Logout(c.Request.Context(), s.sessionToken(c)); err != nil {
		s.respondError(c, err)
		return
	}
	c.SetCookie(s.config.Session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.store.GetUserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

func (s *Server) setSessionCookie(c *gin.Context, session *models.Session) {
	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	c.SetCookie(s.config.Session.CookieName, session.Token, maxAge, "/", "", false, true)
	c.Header("X-Session-Token", session.Token)
}
