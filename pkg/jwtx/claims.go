package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants for the access/refresh session flow.
// These provide sensible security defaults but can be overridden per-service.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Short-lived because access tokens are never individually revocable.
	DefaultAccessTokenTTL = 1 * time.Hour

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience; rotation makes each one single-use.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims is the identity payload signed into every token. The wire format is
// exactly these five fields (sub, email, name, iat, exp as Unix seconds) for
// both purposes; access and refresh tokens differ only by signing key.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user.
	Email string `json:"email,omitempty"`

	// Name is the display name for the user.
	Name string `json:"name,omitempty"`
}

// NewClaims builds minimally-correct claims for a user session.
func NewClaims(subject, email, name string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Name:  name,
	}
}

// ValidateExpiry ensures the token hasn't expired (exp).
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryAt(time.Now().UTC())
}

// ValidateExpiryAt is ValidateExpiry against a caller-supplied clock, so
// expiry behaviour can be pinned down in tests without minting stale tokens.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}

// Equal reports whether two claims carry the same content. Claims are
// value-compared; two independently signed tokens over the same content
// are the same claims.
func (c Claims) Equal(other Claims) bool {
	return c.Subject == other.Subject &&
		c.Email == other.Email &&
		c.Name == other.Name &&
		numericDateEqual(c.IssuedAt, other.IssuedAt) &&
		numericDateEqual(c.ExpiresAt, other.ExpiresAt)
}

func numericDateEqual(a, b *jwt.NumericDate) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Unix() == b.Unix()
}
