package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	hash, err := pm.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, pm.VerifyPassword("correct horse battery", hash))
	assert.Error(t, pm.VerifyPassword("wrong password", hash))
}

func TestValidatePassword(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	assert.Error(t, pm.ValidatePassword("short"), "under 8 characters")
	assert.NoError(t, pm.ValidatePassword("12345678"))
	assert.Error(t, pm.ValidatePassword(strings.Repeat("x", 129)), "over 128 characters")
}

func TestHashPasswordRejectsWeak(t *testing.T) {
	pm := NewPasswordManager(testConfig())
	_, err := pm.HashPassword("short")
	assert.Error(t, err)
}
