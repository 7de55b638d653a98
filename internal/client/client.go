// Package client talks to a Glow server: session management and a
// store.Store implementation over the row-CRUD collection API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/existflow/glow/internal/config"
)

// Session is the persisted login state at ~/.glow/session.json.
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
}

// Client is an authenticated Glow server client.
type Client struct {
	session     Session
	sessionPath string
	httpClient  *http.Client
}

// New loads any saved session and returns a client. serverURL
// overrides the saved server when non-empty.
func New(serverURL string) (*Client, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		sessionPath: filepath.Join(dir, "session.json"),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	c.loadSession()
	if serverURL != "" {
		c.session.ServerURL = serverURL
	}
	if c.session.ServerURL == "" {
		c.session.ServerURL = "http://localhost:8080"
	}
	return c, nil
}

func (c *Client) loadSession() {
	data, err := os.ReadFile(c.sessionPath)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, &c.session)
}

func (c *Client) saveSession() error {
	if err := os.MkdirAll(filepath.Dir(c.sessionPath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.sessionPath, data, 0600)
}

// IsLoggedIn reports whether a session token is saved.
func (c *Client) IsLoggedIn() bool {
	return c.session.Token != ""
}

// ServerURL returns the server this client talks to.
func (c *Client) ServerURL() string {
	return c.session.ServerURL
}

type authResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Register creates an account and stores the session.
func (c *Client) Register(username, email, password string) error {
	var result authResult
	err := c.do(http.MethodPost, "/api/v1/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	c.session.Token = result.Token
	c.session.UserID = result.UserID
	return c.saveSession()
}

// Login authenticates and stores the session.
func (c *Client) Login(username, password string) error {
	var result authResult
	err := c.do(http.MethodPost, "/api/v1/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	c.session.Token = result.Token
	c.session.UserID = result.UserID
	return c.saveSession()
}

// RequestMagicLink asks the server for a passwordless login token.
// The returned token is only populated by development servers.
func (c *Client) RequestMagicLink(email string) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	err := c.do(http.MethodPost, "/api/v1/magic-link", map[string]string{"email": email}, &result)
	if err != nil {
		return "", fmt.Errorf("request magic link: %w", err)
	}
	return result.Token, nil
}

// VerifyMagicLink exchanges a magic link token for a session.
func (c *Client) VerifyMagicLink(token string) error {
	var result authResult
	if err := c.do(http.MethodGet, "/api/v1/magic-link/"+token, nil, &result); err != nil {
		return fmt.Errorf("verify magic link: %w", err)
	}
	c.session.Token = result.Token
	c.session.UserID = result.UserID
	return c.saveSession()
}

// Logout clears the saved session, invalidating it server side first
// on a best-effort basis.
func (c *Client) Logout() error {
	_ = c.do(http.MethodPost, "/api/v1/logout", nil, nil)
	c.session.Token = ""
	c.session.UserID = ""
	return c.saveSession()
}

// do performs one JSON request against the server.
func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.session.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &envelope) == nil && envelope.Error != "" {
			return fmt.Errorf("server: %s", envelope.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
