package handlers

import (
	"net/http"

	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/auth"
	"github.com/knowhealth/backend/internal/validation"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

// AuthHandler handles signup, login and session introspection.
type AuthHandler struct {
	users  *services.UserService
	tokens *auth.TokenManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *services.UserService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type sessionResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    interface{} `json:"user"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input validation.SignupInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if issues := validation.Validate(input); len(issues) > 0 {
		respondWithIssues(w, issues)
		return
	}

	user, err := h.users.Register(r.Context(), input.Name, input.Email, input.Password, input.AvatarURL)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		respondWithServiceError(w, apperrors.NewInternalError("failed to issue session token", err))
		return
	}

	respondWithJSON(w, http.StatusCreated, sessionResponse{Success: true, Token: token, User: user})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input validation.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if issues := validation.Validate(input); len(issues) > 0 {
		respondWithIssues(w, issues)
		return
	}

	user, err := h.users.Authenticate(r.Context(), input.Email, input.Password)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			respondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondWithServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		respondWithServiceError(w, apperrors.NewInternalError("failed to issue session token", err))
		return
	}

	respondWithJSON(w, http.StatusOK, sessionResponse{Success: true, Token: token, User: user})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
