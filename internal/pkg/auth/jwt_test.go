package auth

import (
	"testing"
	"time"

	"github.com/arianshop/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Arian Shop Test"},
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry: time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateToken(42, "ada@example.com", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)
}

func TestAdminClaim(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateToken(0, "admin@example.com", true)
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, uint(0), claims.UserID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())
	token, err := manager.GenerateToken(1, "a@example.com", false)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig())
	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer "))
}
