package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/pilotba/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c := jwtx.NewClaims("user-1", "alice@example.com", "Alice", time.Hour, now)

	require.Equal(t, "user-1", c.Subject)
	require.Equal(t, "alice@example.com", c.Email)
	require.Equal(t, "Alice", c.Name)
	require.Equal(t, now.Unix(), c.IssuedAt.Unix())
	require.Equal(t, now.Add(time.Hour).Unix(), c.ExpiresAt.Unix())
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.NoError(t, claims.ValidateExpiry())
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("missing exp", func(t *testing.T) {
		claims := &jwtx.Claims{}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrInvalidClaim)
	})

	t.Run("pinned clock", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.NoError(t, claims.ValidateExpiryAt(now))
		require.ErrorIs(t, claims.ValidateExpiryAt(now.Add(2*time.Minute)), jwtx.ErrExpired)
	})
}

func TestClaimsEqual(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := jwtx.NewClaims("user-1", "alice@example.com", "Alice", time.Hour, now)

	t.Run("same content", func(t *testing.T) {
		b := jwtx.NewClaims("user-1", "alice@example.com", "Alice", time.Hour, now)
		require.True(t, a.Equal(b))
	})

	t.Run("different subject", func(t *testing.T) {
		b := jwtx.NewClaims("user-2", "alice@example.com", "Alice", time.Hour, now)
		require.False(t, a.Equal(b))
	})

	t.Run("different expiry", func(t *testing.T) {
		b := jwtx.NewClaims("user-1", "alice@example.com", "Alice", 2*time.Hour, now)
		require.False(t, a.Equal(b))
	})
}
