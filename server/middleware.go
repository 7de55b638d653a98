package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// authMiddleware resolves the bearer token to a user id and stores
// both on the request context.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return errorJSON(c, http.StatusUnauthorized, "authorization required")
		}
		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth {
			return errorJSON(c, http.StatusUnauthorized, "invalid authorization format")
		}

		var userID string
		var expiresAt time.Time
		err := s.db.QueryRow(
			`SELECT user_id, expires_at FROM sessions WHERE token = $1`, token,
		).Scan(&userID, &expiresAt)
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, "invalid token")
		}
		if time.Now().After(expiresAt) {
			return errorJSON(c, http.StatusUnauthorized, "token expired")
		}

		c.Set("user_id", userID)
		c.Set("session_token", token)
		return next(c)
	}
}
