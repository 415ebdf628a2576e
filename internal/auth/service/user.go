package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
	"github.com/aussiebroadwan/pilotba/pkg/cryptox"
	"github.com/aussiebroadwan/pilotba/pkg/idx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

type UserService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates a user account with the default system role. The email is
// stored lowercase so login is case-insensitive.
func (s *UserService) Register(ctx context.Context, email, name, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" || password == "" {
		return domain.User{}, badRequest("Email and password are required")
	}
	if !strings.Contains(email, "@") {
		return domain.User{}, badRequest("Invalid email format")
	}
	if name == "" {
		return domain.User{}, badRequest("Name is required")
	}
	if err := validatePassword(password); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := s.now()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		SystemRole:   domain.SystemRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, badRequest("A user with this email already exists")
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", u.ID))
	return u, nil
}

// Authenticate checks a credential pair and returns the account on success.
// Unknown emails still burn a hash verification so response timing does not
// reveal which of the two factors was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, timingDummyHash())
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		slogx.FromContext(ctx).Info("login rejected", slog.String("user_id", u.ID))
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// EnsureAdmin guarantees an administrator account exists for the configured
// email, creating or promoting as needed. When no password is configured one
// is generated and returned, so the caller can log it exactly once.
func (s *UserService) EnsureAdmin(ctx context.Context, email, name, password string) (string, error) {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}

	existing, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.SystemRole == domain.SystemRoleAdmin || existing.SystemRole == domain.SystemRoleSuperAdmin {
			return "", nil
		}
		existing.SystemRole = domain.SystemRoleAdmin
		existing.UpdatedAt = s.now()
		if err := s.Store.Users().UpdateUser(ctx, existing); err != nil {
			return "", err
		}
		l.Info("promoted configured admin account", slog.String("user_id", existing.ID))
		return "", nil
	case !errors.Is(err, store.ErrNotFound):
		return "", err
	}

	generated := ""
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return "", err
		}
		generated = password
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", err
	}

	if name == "" {
		name = "Administrator"
	}

	now := s.now()
	admin := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		SystemRole:   domain.SystemRoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, admin); err != nil {
		return "", err
	}

	l.Info("seeded admin account", slog.String("user_id", admin.ID))
	return generated, nil
}

// validatePassword enforces the minimum password shape: 8+ characters mixing
// upper case, lower case, and a digit.
func validatePassword(pw string) error {
	if len(pw) < 8 {
		return badRequest("Password must be at least 8 characters")
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return badRequest("Password must contain upper and lower case letters and a number")
	}
	return nil
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// timingDummyHash is a hash of nothing anyone knows, verified against when
// login hits an unknown email. Computed once on first use.
func timingDummyHash() string {
	dummyOnce.Do(func() {
		h, err := cryptox.HashPassword(idx.New().String())
		if err == nil {
			dummyHash = h
		}
	})
	return dummyHash
}
