package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
	"github.com/aussiebroadwan/pilotba/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/pilotba/pkg/idx"
	"github.com/aussiebroadwan/pilotba/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s store.Store, email string, role domain.SystemRole) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "argon2:dummy",
		SystemRole:   role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

// testClock is a manually advanced clock. Rotation tests step it forward so
// consecutive pairs never share an iat, which would make them byte-identical.
type testClock struct {
	at time.Time
}

func newTestClock(at time.Time) *testClock { return &testClock{at: at} }

func (c *testClock) Now() time.Time { return c.at }

func (c *testClock) Advance(d time.Duration) { c.at = c.at.Add(d) }

func newTokenService(t *testing.T, s store.Store, now func() time.Time) *TokenService {
	t.Helper()

	kr, err := jwtx.NewKeyring("test-secret", jwtx.WithClock(now))
	require.NoError(t, err)

	return &TokenService{
		Keyring:    kr,
		Store:      s,
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
		Now:        now,
	}
}

// faultStore fails every transaction, standing in for a revocation store
// outage mid-rotation. Reads pass through to the wrapped store.
type faultStore struct {
	store.Store
}

func (f *faultStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errors.New("revocation store is down")
}

func TestIssueValidateRoundTrip(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	svc := newTokenService(t, newTestStore(t), newTestClock(now).Now)

	claims := jwtx.NewClaims("user-1", "alice@example.com", "Alice", time.Minute, now)

	for _, purpose := range []jwtx.Purpose{jwtx.PurposeAccess, jwtx.PurposeRefresh} {
		token, err := svc.Issue(claims, purpose)
		require.NoError(t, err)

		got, err := svc.Validate(token, purpose)
		require.NoError(t, err)
		require.True(t, claims.Equal(got))
	}
}

func TestValidateRejectsCrossPurpose(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	svc := newTokenService(t, newTestStore(t), newTestClock(now).Now)

	claims := jwtx.NewClaims("user-1", "alice@example.com", "Alice", time.Minute, now)

	access, err := svc.Issue(claims, jwtx.PurposeAccess)
	require.NoError(t, err)
	refresh, err := svc.Issue(claims, jwtx.PurposeRefresh)
	require.NoError(t, err)

	_, err = svc.Validate(access, jwtx.PurposeRefresh)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)

	_, err = svc.Validate(refresh, jwtx.PurposeAccess)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestValidateExpired(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t)

	minting := newTokenService(t, s, newTestClock(now).Now)
	later := newTokenService(t, s, newTestClock(now.Add(2*time.Minute)).Now)

	token, err := minting.Issue(jwtx.NewClaims("user-1", "a@b.com", "A", time.Minute, now), jwtx.PurposeAccess)
	require.NoError(t, err)

	// Fine on the minting clock, dead two minutes later.
	_, err = minting.Validate(token, jwtx.PurposeAccess)
	require.NoError(t, err)

	_, err = later.Validate(token, jwtx.PurposeAccess)
	require.ErrorIs(t, err, jwtx.ErrExpired)
	require.True(t, jwtx.IsValidationError(err))
}

func TestIssuePair(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "alice@example.com", domain.SystemRoleUser)

	clk := newTestClock(time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC))
	svc := newTokenService(t, s, clk.Now)

	pair, err := svc.IssuePair(u)
	require.NoError(t, err)

	require.Equal(t, "Bearer", pair.TokenType)
	require.EqualValues(t, 60, pair.ExpiresIn)
	require.Equal(t, u.ID, pair.User.ID)
	require.Equal(t, "user", pair.User.Role)

	claims, err := svc.Validate(pair.AccessToken, jwtx.PurposeAccess)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.Subject)
	require.Equal(t, u.Email, claims.Email)

	_, err = svc.Validate(pair.RefreshToken, jwtx.PurposeRefresh)
	require.NoError(t, err)

	// The pair is not interchangeable.
	_, err = svc.Validate(pair.RefreshToken, jwtx.PurposeAccess)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestRotateIsSingleUse(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "alice@example.com", domain.SystemRoleUser)

	clk := newTestClock(time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC))
	svc := newTokenService(t, s, clk.Now)

	first, err := svc.IssuePair(u)
	require.NoError(t, err)

	clk.Advance(time.Second)
	second, err := svc.Rotate(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)
	require.Equal(t, u.ID, second.User.ID)

	_, err = svc.Validate(second.AccessToken, jwtx.PurposeAccess)
	require.NoError(t, err)

	// Replaying the consumed token fails, however often it's tried.
	clk.Advance(time.Second)
	_, err = svc.Rotate(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.Rotate(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)

	// The chain continues from the fresh token.
	clk.Advance(time.Second)
	third, err := svc.Rotate(ctx, second.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, second.RefreshToken, third.RefreshToken)
}

func TestRotateRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "alice@example.com", domain.SystemRoleUser)

	clk := newTestClock(time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC))
	svc := newTokenService(t, s, clk.Now)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Rotate(ctx, "not-a-token")
		require.True(t, jwtx.IsValidationError(err))
	})

	t.Run("access token in the refresh slot", func(t *testing.T) {
		pair, err := svc.IssuePair(u)
		require.NoError(t, err)

		_, err = svc.Rotate(ctx, pair.AccessToken)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		ghost := domain.User{ID: idx.New().String(), Email: "ghost@example.com", Name: "Ghost"}
		pair, err := svc.IssuePair(ghost)
		require.NoError(t, err)

		_, err = svc.Rotate(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRotateStoreOutage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "alice@example.com", domain.SystemRoleUser)

	clk := newTestClock(time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC))
	healthy := newTokenService(t, s, clk.Now)

	pair, err := healthy.IssuePair(u)
	require.NoError(t, err)

	broken := *healthy
	broken.Store = &faultStore{Store: s}

	clk.Advance(time.Second)
	_, err = broken.Rotate(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrStoreUnavailable)

	// The failed rotation persisted nothing: the same token rotates cleanly
	// once the store is back.
	clk.Advance(time.Second)
	next, err := healthy.Rotate(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, next.RefreshToken)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "alice@example.com", domain.SystemRoleUser)

	clk := newTestClock(time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC))
	svc := newTokenService(t, s, clk.Now)

	t.Run("revokes a live refresh token", func(t *testing.T) {
		pair, err := svc.IssuePair(u)
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

		clk.Advance(time.Second)
		_, err = svc.Rotate(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("is idempotent", func(t *testing.T) {
		clk.Advance(time.Second)
		pair, err := svc.IssuePair(u)
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
		require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	})

	t.Run("ignores tokens that never verified", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, ""))
		require.NoError(t, svc.Logout(ctx, "garbage"))

		clk.Advance(time.Second)
		pair, err := svc.IssuePair(u)
		require.NoError(t, err)
		require.NoError(t, svc.Logout(ctx, pair.AccessToken))

		// The access token in the wrong slot revoked nothing.
		clk.Advance(time.Second)
		_, err = svc.Rotate(ctx, pair.RefreshToken)
		require.NoError(t, err)
	})
}
