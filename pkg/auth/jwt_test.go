package auth

import (
	"testing"

	"noteful-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTManager() *JWTManager {
	return NewJWTManager(&config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
	})
}

func TestJWT_RoundTrip(t *testing.T) {
	m := testJWTManager()

	token, err := m.GenerateToken("3b90e1c2-85a7-4c79-b6a3-111111111111", "bob")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "3b90e1c2-85a7-4c79-b6a3-111111111111", claims.UserID)
	assert.Equal(t, "bob", claims.Username)
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	token, err := testJWTManager().GenerateToken("id", "bob")
	require.NoError(t, err)

	other := NewJWTManager(&config.Config{JWTSecret: "different-secret", JWTExpiryHours: 1})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsGarbage(t *testing.T) {
	_, err := testJWTManager().ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWT_RejectsExpired(t *testing.T) {
	expired := NewJWTManager(&config.Config{JWTSecret: "test-secret", JWTExpiryHours: -1})

	token, err := expired.GenerateToken("id", "bob")
	require.NoError(t, err)

	_, err = testJWTManager().ValidateToken(token)
	assert.Error(t, err)
}
