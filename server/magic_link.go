package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type magicLinkRequest struct {
	Email string `json:"email"`
}

// handleMagicLink creates a passwordless login token for an existing
// account. The response never reveals whether the email exists.
func (s *Server) handleMagicLink(c echo.Context) error {
	var req magicLinkRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	if req.Email == "" {
		return errorJSON(c, http.StatusBadRequest, "email required")
	}

	var userID string
	if err := s.db.QueryRow(`SELECT id FROM users WHERE email = $1`, req.Email).Scan(&userID); err != nil {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "if the email exists, a magic link will be sent",
		})
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		c.Logger().Error("token generation error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	token := hex.EncodeToString(tokenBytes)

	_, err := s.db.Exec(
		`INSERT INTO magic_links (email, token, expires_at) VALUES ($1, $2, $3)`,
		req.Email, token, time.Now().Add(15*time.Minute))
	if err != nil {
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	c.Logger().Infof("Magic link created for: %s", req.Email)

	// TODO: deliver by email once an SMTP relay is configured; until
	// then the token is returned for development use.
	return c.JSON(http.StatusOK, map[string]string{
		"message": "if the email exists, a magic link will be sent",
		"token":   token,
	})
}

// handleMagicLinkVerify exchanges an unused, unexpired magic link
// token for a session.
func (s *Server) handleMagicLinkVerify(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return errorJSON(c, http.StatusBadRequest, "token required")
	}

	var email string
	var expiresAt time.Time
	var used bool
	err := s.db.QueryRow(
		`SELECT email, expires_at, used FROM magic_links WHERE token = $1`, token,
	).Scan(&email, &expiresAt, &used)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid token")
	}
	if used {
		return errorJSON(c, http.StatusBadRequest, "token already used")
	}
	if time.Now().After(expiresAt) {
		return errorJSON(c, http.StatusBadRequest, "token expired")
	}

	if _, err := s.db.Exec(`UPDATE magic_links SET used = TRUE WHERE token = $1`, token); err != nil {
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	var userID string
	if err := s.db.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&userID); err != nil {
		return errorJSON(c, http.StatusNotFound, "user not found")
	}

	sessionToken, sessionExpires, err := s.createSession(userID)
	if err != nil {
		c.Logger().Error("session error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	c.Logger().Infof("Magic link login: %s", email)
	return c.JSON(http.StatusOK, authResponse{
		Token:     sessionToken,
		ExpiresAt: sessionExpires.Format(time.RFC3339),
		UserID:    userID,
	})
}
