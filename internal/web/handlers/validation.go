package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// ValidationError represents invalid client input
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// createTodoRequest is the body of POST /api/todos.
// Pointers distinguish an absent field from its zero value.
type createTodoRequest struct {
	Title *string `json:"title"`
}

// Validate checks the title is present and not blank
func (req createTodoRequest) Validate() error {
	if req.Title == nil {
		return ValidationError{Field: "title", Message: "is required"}
	}
	if strings.TrimSpace(*req.Title) == "" {
		return ValidationError{Field: "title", Message: "must not be empty"}
	}
	return nil
}

// updateTodoRequest is the body of PUT /api/todos/{id}
type updateTodoRequest struct {
	Completed *bool `json:"completed"`
}

// Validate checks completed is present
func (req updateTodoRequest) Validate() error {
	if req.Completed == nil {
		return ValidationError{Field: "completed", Message: "is required"}
	}
	return nil
}

// decodeJSON reads a single JSON object from the request body into dst.
// Syntax and type errors are reported as ValidationError, as is anything
// following the object.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		var extra json.RawMessage
		switch err = dec.Decode(&extra); {
		case errors.Is(err, io.EOF):
			return nil
		case err == nil:
			return ValidationError{Message: "invalid JSON body"}
		}
	}

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return ValidationError{Message: "request body must be a JSON object"}
		}
		return ValidationError{Field: typeErr.Field, Message: "must be a " + jsonTypeName(typeErr.Type)}
	case errors.As(err, &maxErr):
		return ValidationError{Message: fmt.Sprintf("request body must not exceed %d bytes", maxErr.Limit)}
	case errors.Is(err, io.EOF):
		return ValidationError{Message: "request body is required"}
	default:
		return ValidationError{Message: "invalid JSON body"}
	}
}

// jsonTypeName names a Go type the way a JSON client would
func jsonTypeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.String()
	}
}

// parseTodoID reads the {id} URL parameter. Ids are SERIAL columns, so
// anything past the int4 range is rejected before it reaches storage.
func parseTodoID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 32)
	if err != nil || id < 1 {
		return 0, ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return id, nil
}
