package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "admin@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseJWTRejectsBadTokens(t *testing.T) {
	_, err := ParseJWT("")
	assert.Error(t, err)

	_, err = ParseJWT("not-a-token")
	assert.Error(t, err)

	token, err := GenerateJWT("user-1", "admin@example.com", "admin")
	require.NoError(t, err)
	_, err = ParseJWT(token + "tampered")
	assert.Error(t, err)
}
