package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
)

// getPathID extracts an integer ID from the URL path parameters.
//
// Returns:
//   - (id, nil): The parsed ID if valid
//   - (0, error): A ValidationError wrapping domain.ErrInvalidID if the parameter is missing or not an integer
func getPathID(r *http.Request, paramName string) (int, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.Atoi(pathParam)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer", domain.ErrInvalidID)
	}

	return id, nil
}

// decodeTaskRequest decodes and validates a TaskRequest from the body,
// writing a 400 response on failure.
func decodeTaskRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger) (TaskRequest, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "invalid request body", err)
		return TaskRequest{}, false
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "failed to validate request")
		return TaskRequest{}, false
	}

	return req, true
}
