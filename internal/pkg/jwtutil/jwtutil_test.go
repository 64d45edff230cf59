package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, "admin")
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, "admin")
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := GenerateToken("secret", -time.Minute, "admin")
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateRequiresSecret(t *testing.T) {
	_, err := GenerateToken("", time.Hour, "admin")
	assert.Error(t, err)
}
