package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/models"
)

func (s *Server) handleGetSettings(c *gin.Context) {
	settings, err := s.store.GetSettings(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// handleUpdateSettings applies a partial update. Fields absent from the body
// keep their stored values; users without stored settings start from the
// defaults.
func (s *Server) handleUpdateSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.respondError(c, errors.NewValidationError("invalid request body"))
		return
	}

	userID := currentUserID(c)
	settings, err := s.store.GetSettings(c.Request.Context(), userID)
	if err != nil {
		if !errors.IsCode(err, errors.ErrCodeSettingsNotFound) {
			s.respondError(c, err)
			return
		}
		settings = models.DefaultSettings(userID)
	}

	patch.Apply(settings)

	if err := s.store.SaveSettings(c.Request.Context(), settings); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
