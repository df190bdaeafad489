package jobtrack

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenClaims are the claims the JobTrack server puts in its access and
// refresh tokens: sub is the user email, role and type are custom.
type TokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
	Type string `json:"type,omitempty"`
}

// Email returns the subject claim, the server uses the user email
func (c *TokenClaims) Email() string {
	return c.Subject
}

// Expires returns the expiration time, zero when the claim is missing
func (c *TokenClaims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Issued returns the issue time, zero when the claim is missing
func (c *TokenClaims) Issued() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// Expired reports whether the token expired at now. Tokens without an
// exp claim never expire client side.
func (c *TokenClaims) Expired(now time.Time) bool {
	exp := c.Expires()
	if exp.IsZero() {
		return false
	}
	return !now.Before(exp)
}

// ParseTokenClaims decodes the claims of a JWT without verifying its
// signature. The result is for display only.
func ParseTokenClaims(token string) (*TokenClaims, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "unable to decode token claims")
	}

	return claims, nil
}

// StoredTokenClaims decodes the claims of the token currently held by store
func StoredTokenClaims(ctx context.Context, store TokenStore) (*TokenClaims, bool, error) {
	token, ok := store.Get(ctx)
	if !ok {
		return nil, false, nil
	}
	claims, err := ParseTokenClaims(token)
	if err != nil {
		return nil, true, err
	}
	return claims, true, nil
}
