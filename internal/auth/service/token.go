package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
	"github.com/aussiebroadwan/pilotba/pkg/cryptox"
	"github.com/aussiebroadwan/pilotba/pkg/jwtx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

// TokenService mints and validates the access/refresh token pairs and owns
// the refresh rotation flow. Signing and verification are pure CPU work; the
// revocation list is the only I/O it touches.
type TokenService struct {
	Keyring    *jwtx.Keyring
	Store      store.Store
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is the issuance clock, defaulting to time.Now. Tests that pin it
	// should hand the same clock to the keyring via jwtx.WithClock.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// Issue signs claims with the key for the given purpose.
func (s *TokenService) Issue(claims jwtx.Claims, purpose jwtx.Purpose) (string, error) {
	token, err := s.Keyring.Signer(purpose).Sign(claims)
	if err != nil {
		return "", err
	}
	tokensIssuedTotal.WithLabelValues(string(purpose)).Inc()
	return token, nil
}

// Validate checks the signature against the purpose key and the expiry
// against the clock. It never consults the revocation list; the refresh
// flows layer that on top.
func (s *TokenService) Validate(token string, purpose jwtx.Purpose) (jwtx.Claims, error) {
	return s.Keyring.Verifier(purpose).Verify(token)
}

// IssuePair mints the access+refresh pair for a user session. Both tokens
// carry the same claims; they differ by signing key and lifetime.
func (s *TokenService) IssuePair(u domain.User) (domain.TokenPair, error) {
	now := s.now()

	access, err := s.Issue(jwtx.NewClaims(u.ID, u.Email, u.Name, s.accessTTL(), now), jwtx.PurposeAccess)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.Issue(jwtx.NewClaims(u.ID, u.Email, u.Name, s.refreshTTL(), now), jwtx.PurposeRefresh)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL() / time.Second),
		User:         u.Info(),
	}, nil
}

// Rotate exchanges a refresh token for a fresh pair. The old token is dead
// before anything new is minted: the revocation check and write commit in
// one transaction, then the pair is issued. If rotation is cut off after
// the commit the caller is left with a revoked token and no pair, which
// costs them a login; the reverse (old and new both live) cannot happen.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Validate(refreshToken, jwtx.PurposeRefresh)
	if err != nil {
		tokenRotationsTotal.WithLabelValues("rejected").Inc()
		return domain.TokenPair{}, err
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			tokenRotationsTotal.WithLabelValues("rejected").Inc()
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		l.Error("rotation user lookup failed", slog.Any("error", err))
		tokenRotationsTotal.WithLabelValues("store_error").Inc()
		return domain.TokenPair{}, ErrStoreUnavailable
	}

	hash := cryptox.FingerprintToken(refreshToken)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		revoked, err := tx.RevokedTokens().IsTokenRevoked(ctx, hash)
		if err != nil {
			return err
		}
		if revoked {
			return ErrTokenRevoked
		}
		return tx.RevokedTokens().RecordRevokedToken(ctx, domain.RevokedToken{
			TokenHash: hash,
			UserID:    u.ID,
			ExpiresAt: claims.ExpiresAt.Time,
			CreatedAt: s.now(),
		})
	})
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			l.Info("refresh token replay rejected", slog.String("user_id", u.ID))
			tokenRotationsTotal.WithLabelValues("revoked").Inc()
			return domain.TokenPair{}, ErrTokenRevoked
		}
		l.Error("rotation revocation write failed", slog.Any("error", err))
		tokenRotationsTotal.WithLabelValues("store_error").Inc()
		return domain.TokenPair{}, ErrStoreUnavailable
	}

	pair, err := s.IssuePair(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	tokenRotationsTotal.WithLabelValues("rotated").Inc()
	return pair, nil
}

// Logout revokes the presented refresh token. Tokens that don't verify are
// ignored rather than reported, so the endpoint never reveals whether a
// token was live. The revocation row expires with the token itself.
func (s *TokenService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}

	claims, err := s.Validate(refreshToken, jwtx.PurposeRefresh)
	if err != nil {
		return nil
	}

	return s.Store.RevokedTokens().RecordRevokedToken(ctx, domain.RevokedToken{
		TokenHash: cryptox.FingerprintToken(refreshToken),
		UserID:    claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		CreatedAt: s.now(),
	})
}
