package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/campuswatch/campuswatch-be/internal/auth"
	"github.com/campuswatch/campuswatch-be/internal/models"
	"github.com/campuswatch/campuswatch-be/internal/services"
)

// UserHandler handles HTTP requests for registration and authentication.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.Service) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	Phone    string      `json:"phone"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Register(payload.Name, payload.Email, payload.Password, payload.Role, payload.Phone)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondServiceError(w, err, "registering user")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login handles user authentication and token issuance. The token travels
// both in the response body and in a cookie the browser client reads, so
// the cookie is deliberately not HttpOnly.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		respondServiceError(w, err, "logging in")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: false,
		Secure:   isProd,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GetMe retrieves the currently authenticated user from the token.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		log.Error().Msg("Could not retrieve user claims from context")
		respondMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("User from token not found")
		respondServiceError(w, err, "user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// ValidateToken is a liveness probe for the client's stored token; reaching
// it at all means the authentication middleware accepted the token.
func (h *UserHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
}
