package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func requireBadRequest(t *testing.T, err error, msg string) {
	t.Helper()

	require.ErrorIs(t, err, ErrBadRequest)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	require.Equal(t, msg, re.Msg)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	t.Run("creates a default-role account", func(t *testing.T) {
		u, err := svc.Register(ctx, "Alice@Example.COM ", "Alice", "Sup3rSecret")
		require.NoError(t, err)

		require.Equal(t, "alice@example.com", u.Email)
		require.Equal(t, domain.SystemRoleUser, u.SystemRole)
		require.NotEmpty(t, u.ID)
		require.NotEqual(t, "Sup3rSecret", u.PasswordHash)

		stored, err := svc.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Alice", stored.Name)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice@example.com", "Other Alice", "An0therSecret")
		requireBadRequest(t, err, "A user with this email already exists")
	})

	t.Run("requires email and password", func(t *testing.T) {
		_, err := svc.Register(ctx, "", "Bob", "Sup3rSecret")
		requireBadRequest(t, err, "Email and password are required")

		_, err = svc.Register(ctx, "bob@example.com", "Bob", "")
		requireBadRequest(t, err, "Email and password are required")
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := svc.Register(ctx, "not-an-email", "Bob", "Sup3rSecret")
		requireBadRequest(t, err, "Invalid email format")
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob@example.com", "  ", "Sup3rSecret")
		requireBadRequest(t, err, "Name is required")
	})

	t.Run("enforces password shape", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob@example.com", "Bob", "Sh0rt")
		requireBadRequest(t, err, "Password must be at least 8 characters")

		_, err = svc.Register(ctx, "bob@example.com", "Bob", "alllowercase1")
		requireBadRequest(t, err, "Password must contain upper and lower case letters and a number")

		_, err = svc.Register(ctx, "bob@example.com", "Bob", "NoDigitsHere")
		requireBadRequest(t, err, "Password must contain upper and lower case letters and a number")
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	registered, err := svc.Register(ctx, "carol@example.com", "Carol", "S3cretPass")
	require.NoError(t, err)

	t.Run("accepts the right credentials", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "carol@example.com", "S3cretPass")
		require.NoError(t, err)
		require.Equal(t, registered.ID, u.ID)
	})

	t.Run("is case-insensitive on email", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "CAROL@example.com", "S3cretPass")
		require.NoError(t, err)
		require.Equal(t, registered.ID, u.ID)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "carol@example.com", "WrongPass1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown email with the same error", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "S3cretPass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured email is a no-op", func(t *testing.T) {
		svc := &UserService{Store: newTestStore(t)}

		generated, err := svc.EnsureAdmin(ctx, "", "Admin", "password")
		require.NoError(t, err)
		require.Empty(t, generated)
	})

	t.Run("seeds a fresh admin with a generated password", func(t *testing.T) {
		svc := &UserService{Store: newTestStore(t)}

		generated, err := svc.EnsureAdmin(ctx, "Admin@Example.com", "", "")
		require.NoError(t, err)
		require.NotEmpty(t, generated)

		u, err := svc.Authenticate(ctx, "admin@example.com", generated)
		require.NoError(t, err)
		require.Equal(t, domain.SystemRoleAdmin, u.SystemRole)
		require.Equal(t, "Administrator", u.Name)
	})

	t.Run("uses the configured password when given", func(t *testing.T) {
		svc := &UserService{Store: newTestStore(t)}

		generated, err := svc.EnsureAdmin(ctx, "admin@example.com", "Ops", "Adm1nPassword")
		require.NoError(t, err)
		require.Empty(t, generated)

		u, err := svc.Authenticate(ctx, "admin@example.com", "Adm1nPassword")
		require.NoError(t, err)
		require.Equal(t, "Ops", u.Name)
	})

	t.Run("promotes an existing account", func(t *testing.T) {
		s := newTestStore(t)
		svc := &UserService{Store: s}

		existing, err := svc.Register(ctx, "dana@example.com", "Dana", "S3cretPass")
		require.NoError(t, err)
		require.Equal(t, domain.SystemRoleUser, existing.SystemRole)

		generated, err := svc.EnsureAdmin(ctx, "dana@example.com", "", "")
		require.NoError(t, err)
		require.Empty(t, generated)

		promoted, err := svc.GetUserByID(ctx, existing.ID)
		require.NoError(t, err)
		require.Equal(t, domain.SystemRoleAdmin, promoted.SystemRole)

		// The password is untouched by promotion.
		_, err = svc.Authenticate(ctx, "dana@example.com", "S3cretPass")
		require.NoError(t, err)
	})

	t.Run("leaves an existing admin alone", func(t *testing.T) {
		s := newTestStore(t)
		svc := &UserService{Store: s}

		_, err := svc.EnsureAdmin(ctx, "root@example.com", "Root", "R00tPassword")
		require.NoError(t, err)

		before, err := s.Users().GetUserByEmail(ctx, "root@example.com")
		require.NoError(t, err)

		generated, err := svc.EnsureAdmin(ctx, "root@example.com", "Other", "Different1")
		require.NoError(t, err)
		require.Empty(t, generated)

		after, err := s.Users().GetUserByEmail(ctx, "root@example.com")
		require.NoError(t, err)
		require.Equal(t, before.Name, after.Name)
		require.Equal(t, before.PasswordHash, after.PasswordHash)
	})
}

func TestAuthenticateStoreFailure(t *testing.T) {
	ctx := context.Background()

	s := newTestStore(t)
	seedUser(t, s, "erin@example.com", domain.SystemRoleUser)
	require.NoError(t, s.Close())

	svc := &UserService{Store: s}
	_, err := svc.Authenticate(ctx, "erin@example.com", "whatever")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrInvalidCredentials))
	require.False(t, errors.Is(err, store.ErrNotFound))
}
