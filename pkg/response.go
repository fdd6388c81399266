package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorBody is the wire shape of every error response.
// Clients always get a human-readable detail string.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes v as the response body with the given status.
// Success payloads are not enveloped.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// Error writes an error response, mapping domain errors to status codes.
func Error(w http.ResponseWriter, err error) {
	ErrorWithMessage(w, mapErrorToStatus(err), err.Error())
}

// ErrorWithMessage writes an error response with an explicit status and detail.
func ErrorWithMessage(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorBody{Detail: detail}); err != nil {
		http.Error(w, "failed to encode error response", http.StatusInternalServerError)
	}
}

// mapErrorToStatus maps domain errors to HTTP status codes.
// errors.Is walks the chain, so wrapped errors match too.
// Duplicate registration is a bad request here, not a conflict.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
