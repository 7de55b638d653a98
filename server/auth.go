package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/existflow/glow/internal/model"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	UserID    string `json:"user_id"`
}

// handleRegister creates an account and seeds its starter data.
func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return errorJSON(c, http.StatusBadRequest, "username, email, and password required")
	}
	if len(req.Password) < 8 {
		return errorJSON(c, http.StatusBadRequest, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.Logger().Error("bcrypt error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	var userID string
	err = s.db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id`,
		req.Username, req.Email, string(hash),
	).Scan(&userID)
	if err != nil {
		if strings.Contains(err.Error(), "unique") {
			return errorJSON(c, http.StatusConflict, "username or email already exists")
		}
		c.Logger().Error("db error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	s.seedUser(c, userID)

	token, expiresAt, err := s.createSession(userID)
	if err != nil {
		c.Logger().Error("session error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	c.Logger().Infof("User registered: %s", req.Username)
	return c.JSON(http.StatusOK, authResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		UserID:    userID,
	})
}

// seedUser gives a fresh account the starter categories and the
// archetype catalog. Seeding failures are logged, not fatal: the
// account still works without starter rows.
func (s *Server) seedUser(c echo.Context, userID string) {
	for _, cat := range model.StarterCategories {
		if _, err := s.db.Exec(
			`INSERT INTO categories (user_id, name, emoji) VALUES ($1, $2, $3)`,
			userID, cat.Name, cat.Emoji); err != nil {
			c.Logger().Warnf("seed category %q: %v", cat.Name, err)
		}
	}
	for _, a := range model.StarterArchetypes {
		identities, _ := json.Marshal(a.DefaultIdentities)
		habits, _ := json.Marshal(a.TemplateHabits)
		if _, err := s.db.Exec(`
			INSERT INTO archetypes (user_id, name, emoji, description, identities, habits)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			userID, a.Name, a.Emoji, a.Description, string(identities), string(habits)); err != nil {
			c.Logger().Warnf("seed archetype %q: %v", a.Name, err)
		}
	}
}

// handleLogin authenticates with username and password.
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	var userID, passwordHash string
	err := s.db.QueryRow(
		`SELECT id, password_hash FROM users WHERE username = $1`,
		req.Username,
	).Scan(&userID, &passwordHash)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return errorJSON(c, http.StatusUnauthorized, "invalid credentials")
	}

	token, expiresAt, err := s.createSession(userID)
	if err != nil {
		c.Logger().Error("session error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	c.Logger().Infof("User logged in: %s", req.Username)
	return c.JSON(http.StatusOK, authResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		UserID:    userID,
	})
}

// handleMe returns the session user.
func (s *Server) handleMe(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var username, email string
	err := s.db.QueryRow(
		`SELECT username, email FROM users WHERE id = $1`, userID,
	).Scan(&username, &email)
	if err != nil {
		return errorJSON(c, http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"id":       userID,
		"username": username,
		"email":    email,
	})
}

// handleLogout invalidates the current session token.
func (s *Server) handleLogout(c echo.Context) error {
	token := c.Get("session_token").(string)
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE token = $1`, token); err != nil {
		c.Logger().Error("logout error:", err)
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// createSession issues a 30-day session token.
func (s *Server) createSession(userID string) (string, time.Time, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", time.Time{}, err
	}
	token := hex.EncodeToString(tokenBytes)
	expiresAt := time.Now().Add(30 * 24 * time.Hour)

	_, err := s.db.Exec(
		`INSERT INTO sessions (user_id, token, expires_at) VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	return token, expiresAt, err
}
