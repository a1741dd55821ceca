package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/models"
)

func (s *Server) handleSubmitFeedback(c *gin.Context) {
	var sub models.FeedbackSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		s.respondError(c, errors.NewValidationError("invalid request body"))
		return
	}

	result, err := s.feedback.Submit(c.Request.Context(), currentUserID(c), &sub)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
