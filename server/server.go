// Package server is the Glow persistence service: session-scoped row
// CRUD over named collections, backed by Postgres. Clients treat it as
// a plain backend-as-a-service; all habit logic lives client side.
package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"

	"github.com/existflow/glow/internal/logger"
)

// Server serves the collection API.
type Server struct {
	db   *sql.DB
	echo *echo.Echo
}

// New connects to Postgres, migrates, and wires up routes.
func New(dbURL string) (*Server, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Server{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	s.setupEcho()
	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("HTTP",
				logger.F("method", c.Request().Method),
				logger.F("uri", c.Request().RequestURI),
				logger.F("status", c.Response().Status),
				logger.F("duration", time.Since(start).String()))
			return err
		}
	})
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	api := e.Group("/api/v1")
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)
	api.POST("/magic-link", s.handleMagicLink)
	api.GET("/magic-link/:token", s.handleMagicLinkVerify)

	protected := api.Group("")
	protected.Use(s.authMiddleware)
	protected.GET("/me", s.handleMe)
	protected.POST("/logout", s.handleLogout)
	protected.GET("/data/:collection", s.handleList)
	protected.POST("/data/:collection", s.handleInsert)
	protected.PATCH("/data/:collection/:id", s.handlePatch)
	protected.DELETE("/data/:collection/:id", s.handleDelete)

	s.echo = e
}

// Close closes the database connection.
func (s *Server) Close() error {
	return s.db.Close()
}

// Router returns the HTTP handler, for tests.
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts listening on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}
