package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("analyst@example.com", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "analyst@example.com", claims.Subject)
}

func TestParseAccessToken_Rejects(t *testing.T) {
	expired, err := NewAccessToken("a", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseAccessToken(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	valid, err := NewAccessToken("a", "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseAccessToken(valid, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAccessToken("not-a-token", "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)

	anonymous, err := NewAccessToken("", "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseAccessToken(anonymous, "secret")
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestSubjectContext(t *testing.T) {
	_, ok := GetSubjectFromContext(context.Background())
	assert.False(t, ok)

	subject, ok := GetSubjectFromContext(WithSubject(context.Background(), "ops"))
	require.True(t, ok)
	assert.Equal(t, "ops", subject)
}
