package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// IsValidationError reports whether err is one of the token validation
// failures above. Callers collapse these to a single unauthorized outcome at
// the API boundary; the distinction exists for logs and tests only.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMalformed) ||
		errors.Is(err, ErrInvalidSig) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrInvalidClaim)
}

// HS256Verifier validates JWTs signed using HMAC-SHA-256.
type HS256Verifier struct {
	key []byte
	now func() time.Time
}

// NewVerifierHS256 creates a verifier over the given symmetric key. The clock
// defaults to time.Now and exists so expiry tests don't have to sleep.
func NewVerifierHS256(key []byte, now func() time.Time) (*HS256Verifier, error) {
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty HMAC key")
	}
	if now == nil {
		now = time.Now
	}
	return &HS256Verifier{key: key, now: now}, nil
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		// WithValidMethods already rejected anything that isn't HS256,
		// so the only thing to hand back is the shared key.
		return v.key, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	// The parser already enforced exp; re-check against our own clock so the
	// verifier stays correct even if parser defaults drift between versions.
	if err := claims.ValidateExpiryAt(v.now().UTC()); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// mapParseError folds golang-jwt's error tree into our sentinels so callers
// can errors.Is without importing the jwt package. Order matters: a token can
// fail several checks at once and the most specific cause should win.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidClaim, err)
	}
}
