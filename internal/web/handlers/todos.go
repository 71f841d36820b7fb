package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/saltyorg/todo-api/internal/database"
)

// ListTodos returns every todo, newest first
func (h *Handlers) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.store.ListTodos(r.Context())
	if timedOut(r) {
		log.Warn().Err(err).Msg("Listing todos timed out")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to list todos")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, todos)
}

// CreateTodo stores a new incomplete todo from a {"title"} body
func (h *Handlers) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	todo, err := h.store.CreateTodo(r.Context(), *req.Title)
	if timedOut(r) {
		log.Warn().Err(err).Msg("Creating todo timed out")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to create todo")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("todo_id", todo.ID).Msg("Todo created")
	h.writeJSON(w, http.StatusCreated, todo)
}

// UpdateTodo sets the completed flag from a {"completed"} body
func (h *Handlers) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseTodoID(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req updateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	todo, err := h.store.SetTodoCompleted(r.Context(), id, *req.Completed)
	if errors.Is(err, database.ErrNotFound) {
		h.jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	if timedOut(r) {
		log.Warn().Err(err).Int64("todo_id", id).Msg("Updating todo timed out")
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("todo_id", id).Msg("Failed to update todo")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, todo)
}

// DeleteTodo removes a todo. Deleting a missing id still answers 204.
func (h *Handlers) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseTodoID(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.store.DeleteTodo(r.Context(), id)
	if timedOut(r) {
		log.Warn().Err(err).Int64("todo_id", id).Msg("Deleting todo timed out")
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("todo_id", id).Msg("Failed to delete todo")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("todo_id", id).Int64("deleted", n).Msg("Todo delete")
	w.WriteHeader(http.StatusNoContent)
}
