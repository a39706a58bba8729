package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/campuswatch/campuswatch-be/internal/services"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondServiceError maps service-layer errors onto HTTP responses.
// Anything outside the known taxonomy is a storage failure: logged, and
// surfaced as a 500 with an opaque detail.
func respondServiceError(w http.ResponseWriter, err error, context string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondMessage(w, http.StatusNotFound, context+" not found")
	case errors.Is(err, services.ErrDuplicateEmail):
		respondMessage(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondMessage(w, http.StatusBadRequest, "Invalid Email/Password")
	case errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrValidation):
		respondMessage(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("context", context).Msg("Storage failure")
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Error " + context,
			"error":   err.Error(),
		})
	}
}
