// Package handlers exposes the JSON HTTP surface. Mutating form-style
// endpoints answer with a FormState envelope so clients can re-render
// forms with per-field feedback.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/knowhealth/backend/pkg/errors"
)

// FormState is the envelope returned by form-backed actions.
type FormState struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Issues  []string `json:"issues,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError answers a failed request. The envelope always carries
// success=false and duplicates the message under "error" for the read
// endpoints that report failures under that key.
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]interface{}{
		"success": false,
		"message": message,
		"error":   message,
	})
}

// userMessage returns the client-safe message carried by a typed error.
func userMessage(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.Message
	}
	return "internal server error"
}

// respondWithIssues answers a form action whose input failed validation.
func respondWithIssues(w http.ResponseWriter, issues []string) {
	respondWithJSON(w, http.StatusBadRequest, FormState{
		Success: false,
		Message: "validation failed",
		Issues:  issues,
	})
}

// respondWithServiceError maps a typed application error onto an HTTP
// status. Internal detail is logged, never sent to the client.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	message := "internal server error"
	status := http.StatusInternalServerError

	if e, ok := err.(*apperrors.AppError); ok {
		appErr = e
	}

	if appErr != nil {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			status, message = http.StatusNotFound, appErr.Message
		case apperrors.ErrorTypeValidation:
			status, message = http.StatusBadRequest, appErr.Message
		case apperrors.ErrorTypeConflict:
			status, message = http.StatusConflict, appErr.Message
		case apperrors.ErrorTypeUnauthorized:
			status, message = http.StatusForbidden, appErr.Message
		case apperrors.ErrorTypeUnavailable:
			status, message = http.StatusServiceUnavailable, appErr.Message
		case apperrors.ErrorTypeExternal:
			status = http.StatusBadGateway
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}

	respondWithError(w, status, message)
}

// decodeJSON parses a request body into dst, rejecting unknown shapes
// with a 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}
