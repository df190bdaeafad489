package jobtrack_test

import (
	"context"
	"testing"
	"time"

	jobtrack "github.com/dan-yates1/job-tracker"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return token
}

func TestParseTokenClaims(t *testing.T) {
	issued := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	expires := issued.Add(30 * time.Minute)

	token := signToken(t, jwt.MapClaims{
		"sub":  "me@example.com",
		"role": "user",
		"type": "access",
		"iat":  issued.Unix(),
		"exp":  expires.Unix(),
	})

	claims, err := jobtrack.ParseTokenClaims(token)
	require.NoError(t, err)

	assert.Equal(t, "me@example.com", claims.Email())
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "access", claims.Type)
	assert.True(t, claims.Issued().Equal(issued))
	assert.True(t, claims.Expires().Equal(expires))

	assert.False(t, claims.Expired(issued.Add(time.Minute)))
	assert.True(t, claims.Expired(expires))
	assert.True(t, claims.Expired(expires.Add(time.Second)))
}

func TestParseTokenClaims_ExpiredStillDecodes(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": "me@example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	claims, err := jobtrack.ParseTokenClaims(token)
	require.NoError(t, err)
	assert.True(t, claims.Expired(time.Now()))
}

func TestParseTokenClaims_WithoutExpiry(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "me@example.com"})

	claims, err := jobtrack.ParseTokenClaims(token)
	require.NoError(t, err)
	assert.True(t, claims.Expires().IsZero())
	assert.True(t, claims.Issued().IsZero())
	assert.False(t, claims.Expired(time.Now()))
}

func TestParseTokenClaims_Invalid(t *testing.T) {
	_, err := jobtrack.ParseTokenClaims("")
	assert.ErrorIs(t, err, jobtrack.ErrEmptyToken)

	_, err = jobtrack.ParseTokenClaims("opaque-session-token")
	assert.Error(t, err)
}

func TestStoredTokenClaims(t *testing.T) {
	ctx := context.Background()
	tokens := jobtrack.NewTokenStore(nil)

	claims, ok, err := jobtrack.StoredTokenClaims(ctx, tokens)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, claims)

	require.NoError(t, tokens.Set(ctx, signToken(t, jwt.MapClaims{"sub": "me@example.com"})))
	claims, ok, err = jobtrack.StoredTokenClaims(ctx, tokens)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "me@example.com", claims.Email())

	require.NoError(t, tokens.Set(ctx, "opaque"))
	_, ok, err = jobtrack.StoredTokenClaims(ctx, tokens)
	assert.True(t, ok)
	assert.Error(t, err)
}
