package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/greenhollow/almanac/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := borrowBuffer()
	defer returnBuffer(buf)

	// Encode to a pooled buffer first; headers are already sent so an
	// encoding failure can only be logged.
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages derived from domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgSpeciesNotFoundErr = "Unknown species"
	ErrMsgPlantNotFoundErr   = "No plant found at this location"
	ErrMsgOutOfSeasonErr     = "That can't be planted this season"
	ErrMsgUnknownCommandErr  = "Unknown command"
	ErrMsgInvalidInputErr    = "Invalid input. Please check your command."
	ErrMsgSaveKeyNotFoundErr = "Save data not found"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// status codes and messages.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrSpeciesNotFound):
		return http.StatusBadRequest, ErrMsgSpeciesNotFoundErr
	case errors.Is(err, domain.ErrPlantNotFound):
		return http.StatusNotFound, ErrMsgPlantNotFoundErr
	case errors.Is(err, domain.ErrOutOfSeason):
		return http.StatusBadRequest, ErrMsgOutOfSeasonErr
	case errors.Is(err, domain.ErrUnknownCommand):
		return http.StatusBadRequest, ErrMsgUnknownCommandErr
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputErr
	case errors.Is(err, domain.ErrSaveKeyNotFound):
		return http.StatusNotFound, ErrMsgSaveKeyNotFoundErr
	}

	// Wrapped errors with a domain error somewhere in the chain
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	slog.Default().Error(opName+" failed", "error", err, "path", r.URL.Path)
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, statusCode, userMsg)
}
