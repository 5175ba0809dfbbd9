package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/pkg/config"
)

func newTestManager() *TokenManager {
	return NewTokenManager(&config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  1,
	})
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	manager := newTestManager()
	user := &entities.User{ID: "user-1", Role: entities.RoleMember}

	token, err := manager.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenManager_Parse_RejectsWrongSecret(t *testing.T) {
	manager := newTestManager()
	other := NewTokenManager(&config.AuthConfig{JWTSecret: "different-secret", TokenTTL: 1})

	token, err := other.Issue(&entities.User{ID: "user-1", Role: entities.RoleMember})
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestTokenManager_Parse_RejectsGarbage(t *testing.T) {
	manager := newTestManager()

	_, err := manager.Parse("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}
