package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/DavidRSR1/verifica/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondError maps an application error to its HTTP status and sends the
// standard error body.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusForError(err), map[string]string{
		"error": err.Error(),
	})
}

// statusForError resolves the HTTP status of an application error: 404 for
// unknown resources, 400 for rejected input, 500 otherwise.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrProviderNotFound),
		errors.Is(err, apperrors.ErrStationNotFound),
		errors.Is(err, apperrors.ErrUnknownSection):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrInvalidDate),
		errors.Is(err, apperrors.ErrInvalidCNPJ),
		errors.Is(err, apperrors.ErrMissingCNPJ),
		errors.Is(err, apperrors.ErrMissingSortColumn):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
