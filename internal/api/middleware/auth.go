package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/auth"
)

// AuthMiddleware resolves the bearer token on incoming requests and, when
// valid, attaches the user to the request context. Requests without a
// token pass through anonymously; handlers decide what requires auth.
type AuthMiddleware struct {
	tokens *auth.TokenManager
	users  *services.UserService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *auth.TokenManager, users *services.UserService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Middleware returns the auth middleware handler
func (m *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"invalid or expired session token","error":"invalid or expired session token"}`))
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			// A valid token for a user that no longer resolves is treated
			// as anonymous rather than failing the whole request.
			log.Warn().Err(err).Str("user_id", userID).Msg("token resolved to unknown user")
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
	})
}
