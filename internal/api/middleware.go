package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/common/metrics"
)

const userIDKey = "userID"

// corsMiddleware allows the extension origin to reach the API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// observeMiddleware records per-route request durations.
func (s *Server) observeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}

// requireSession resolves the session token from the cookie or the
// Authorization header and stores the user ID on the context.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := s.auth.Sessions().Resolve(c.Request.Context(), s.sessionToken(c))
		if err != nil {
			s.respondError(c, err)
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func (s *Server) sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(s.config.Session.CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func currentUserID(c *gin.Context) int {
	return c.GetInt(userIDKey)
}

// respondError maps application errors onto HTTP responses.
func (s *Server) respondError(c *gin.Context, err error) {
	stdErr := errors.Normalize(err)
	status := errors.HTTPStatus(stdErr.Code)

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", map[string]interface{}{
			"path":  c.Request.URL.Path,
			"code":  string(stdErr.Code),
			"error": stdErr.Details,
		})
	}

	body := gin.H{"code": stdErr.Code, "message": stdErr.Message}
	if stdErr.Details != "" && status != http.StatusInternalServerError {
		body["details"] = stdErr.Details
	}
	c.JSON(status, body)
}
