package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/auth"
	"github.com/knowhealth/backend/pkg/config"
)

func setupAuthHandler(t *testing.T) (*AuthHandler, *services.UserService) {
	t.Helper()

	userService := services.NewUserService(newMemUserRepo())
	tokens := auth.NewTokenManager(&config.AuthConfig{JWTSecret: "test-secret", TokenTTL: 1})
	return NewAuthHandler(userService, tokens), userService
}

func TestAuthHandler_SignupAndLogin(t *testing.T) {
	handler, _ := setupAuthHandler(t)

	body := `{"name": "Ada Obi", "email": "ada@example.com", "password": "s3cret-password"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var signup sessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&signup))
	assert.True(t, signup.Success)
	assert.NotEmpty(t, signup.Token)

	// Password hashes never leak through the JSON surface.
	assert.NotContains(t, w.Body.String(), "password_hash")

	loginBody := `{"email": "ada@example.com", "password": "s3cret-password"}`
	req = httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(loginBody))
	w = httptest.NewRecorder()

	handler.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var login sessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&login))
	assert.NotEmpty(t, login.Token)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	handler, users := setupAuthHandler(t)

	_, err := users.Register(context.Background(), "Ada Obi", "ada@example.com", "s3cret-password", "")
	require.NoError(t, err)

	body := `{"email": "ada@example.com", "password": "wrong-password"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginUnknownEmail(t *testing.T) {
	handler, _ := setupAuthHandler(t)

	body := `{"email": "nobody@example.com", "password": "whatever-password"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	// Same response as a wrong password so account existence is not leaked.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_SignupDuplicateEmail(t *testing.T) {
	handler, users := setupAuthHandler(t)

	_, err := users.Register(context.Background(), "Ada Obi", "ada@example.com", "s3cret-password", "")
	require.NoError(t, err)

	body := `{"name": "Other Ada", "email": "ada@example.com", "password": "another-password"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_SignupKeepsSubmittedAvatar(t *testing.T) {
	handler, _ := setupAuthHandler(t)

	body := `{"name": "Ada Obi", "email": "ada@example.com", "password": "s3cret-password", "avatar_url": "https://cdn.example.com/ada.png"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		User struct {
			AvatarURL string `json:"avatar_url"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "https://cdn.example.com/ada.png", resp.User.AvatarURL)
}

func TestAuthHandler_SignupRejectsWeakInput(t *testing.T) {
	handler, _ := setupAuthHandler(t)

	body := `{"name": "A", "email": "not-an-email", "password": "short"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var state FormState
	require.NoError(t, json.NewDecoder(w.Body).Decode(&state))
	assert.Contains(t, state.Issues, "email: must be a valid email address")
	assert.Contains(t, state.Issues, "password: must be at least 8 characters")
}

func TestAuthHandler_MeWithoutSession(t *testing.T) {
	handler, _ := setupAuthHandler(t)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	w := httptest.NewRecorder()

	handler.Me(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
