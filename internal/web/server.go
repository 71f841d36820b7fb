package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/saltyorg/todo-api/internal/config"
	"github.com/saltyorg/todo-api/internal/web/handlers"
	"github.com/saltyorg/todo-api/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	addr     string
	port     int
	timeouts config.TimeoutConfig
	router   *chi.Mux
	handlers *handlers.Handlers
}

// NewServer creates a new web server backed by store
func NewServer(store handlers.Store, cfg *config.Config) *Server {
	s := &Server{
		addr:     cfg.Addr(),
		port:     cfg.Port,
		timeouts: cfg.Timeouts,
		router:   chi.NewRouter(),
		handlers: handlers.New(store),
	}

	s.setupRoutes()

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router
	h := s.handlers

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	// CORS must run before routing so preflight requests are answered
	r.Use(middleware.CORS())

	// Set before routes so mounted subrouters inherit them
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		if s.timeouts.Request > 0 {
			r.Use(chimiddleware.Timeout(s.timeouts.Request))
		}

		r.Get("/health", h.Health)

		r.Route("/api/todos", func(r chi.Router) {
			r.Get("/", h.ListTodos)
			r.Post("/", h.CreateTodo)
			r.Put("/{id}", h.UpdateTodo)
			r.Delete("/{id}", h.DeleteTodo)
		})
	})
}

// Start listens on the configured address and serves until ctx is cancelled,
// then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. Shutdown waits up to the
// configured shutdown timeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:     s.router,
		ReadTimeout: s.timeouts.Read,
		IdleTimeout: s.timeouts.Idle,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msgf("Backend running on port %d", s.port)
		log.Info().Msgf("Health check: http://localhost:%d/health", s.port)
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.Shutdown)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
