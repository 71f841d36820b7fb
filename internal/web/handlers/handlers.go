package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saltyorg/todo-api/internal/database"
)

// Store is the data access the handlers need. *database.DB implements it.
type Store interface {
	Ping(ctx context.Context) error
	ListTodos(ctx context.Context) ([]database.Todo, error)
	CreateTodo(ctx context.Context, title string) (*database.Todo, error)
	SetTodoCompleted(ctx context.Context, id int64, completed bool) (*database.Todo, error)
	DeleteTodo(ctx context.Context, id int64) (int64, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	store Store
	now   func() time.Time
}

// New creates a new Handlers instance
func New(store Store) *Handlers {
	return &Handlers{
		store: store,
		now:   time.Now,
	}
}

// NotFound answers unknown routes with a JSON error
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.jsonError(w, "not found", http.StatusNotFound)
}

// MethodNotAllowed answers known routes hit with an unsupported method
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
}

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends v as a JSON response with the given status
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// jsonError sends a JSON error response
func (h *Handlers) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, errorResponse{Error: message})
}

// timedOut reports whether the request ran past the deadline set by the
// Timeout middleware, which answers 504 itself once the handler returns.
func timedOut(r *http.Request) bool {
	return errors.Is(r.Context().Err(), context.DeadlineExceeded)
}
