package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"commerce-api/internal/apperr"
	"commerce-api/internal/logger"
)

// StandardError is the body of every non-2xx response.
type StandardError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Path      string    `json:"path"`
}

// ValidationError adds the per-field violations to StandardError.
type ValidationError struct {
	StandardError
	Errors []apperr.FieldMessage `json:"errors"`
}

// JSON sends a JSON response.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("encode response: %v", err)
	}
}

// Error sends a StandardError with the given status and message.
func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, status, StandardError{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     message,
		Path:      r.URL.Path,
	})
}

// FromError maps a service error onto its HTTP representation.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusUnprocessableEntity, ValidationError{
			StandardError: StandardError{
				Timestamp: time.Now().UTC(),
				Status:    http.StatusUnprocessableEntity,
				Error:     "Invalid data",
				Path:      r.URL.Path,
			},
			Errors: verr.Errors,
		})
	case errors.Is(err, apperr.ErrNotFound):
		Error(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		Error(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		Error(w, r, http.StatusUnauthorized, err.Error())
	default:
		logger.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
