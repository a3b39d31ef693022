package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/report"
	"github.com/phrazzld/todo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, report.ErrUnsupportedFormat):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for client errors.
// Server errors are described by HandleAPIError instead.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "an unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case store.IsDuplicateError(err):
		return "a task with this ID already exists"
	case errors.Is(err, store.ErrTaskNotFound):
		return "task not found"
	case errors.Is(err, report.ErrUnsupportedFormat):
		return redact.Error(err)
	case errors.Is(err, domain.ErrValidation):
		return "validation failed"
	default:
		return "an unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. Server errors embed the
// redacted failure text after failureContext, e.g. "failed to list tasks: ...".
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, failureContext string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError {
		message = fmt.Sprintf("%s: %s", failureContext, redact.Error(err))
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
