// Package httpapi exposes the task and database services over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"

	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/services"
	"task-manager/internal/validation"
)

// Readiness reports whether the database has finished initializing.
type Readiness interface {
	Ready() bool
}

// Server routes requests to the services.
type Server struct {
	tasks     services.TaskService
	database  services.DatabaseService
	ready     Readiness
	validator *validation.TaskValidator
	cfg       *config.Config
	logger    *slog.Logger
	mux       *http.ServeMux
	handler   http.Handler
}

// NewServer creates a Server. A nil logger discards access logs.
func NewServer(container *services.ServiceContainer, ready Readiness, cfg *config.Config, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		tasks:     container.TaskService,
		database:  container.DatabaseService,
		ready:     ready,
		validator: validation.NewTaskValidatorWithConfig(cfg),
		cfg:       cfg,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.routes()
	s.handler = s.withMiddleware(s.mux)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// System
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /readyz", s.handleReady)

	// Tasks
	s.mux.HandleFunc("POST /api/tasks", s.handleTaskCreate)
	s.mux.HandleFunc("GET /api/tasks", s.handleTaskList)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.handleTaskGet)
	s.mux.HandleFunc("PATCH /api/tasks/{id}", s.handleTaskUpdate)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.handleTaskDelete)

	// Database browser
	s.mux.HandleFunc("GET /api/database/schema", s.handleDatabaseSchema)
	s.mux.HandleFunc("GET /api/database/stats", s.handleDatabaseStats)
	s.mux.HandleFunc("GET /api/database/tables/{tableName}", s.handleDatabaseTable)
	s.mux.HandleFunc("POST /api/database/query", s.handleDatabaseQuery)
	s.mux.HandleFunc("DELETE /api/database/clear", s.handleDatabaseClear)

	s.mux.HandleFunc("/", s.handleNotFound)
}
