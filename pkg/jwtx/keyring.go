package jwtx

import (
	"errors"
	"time"
)

// Purpose tags what a token is for. The tag never appears in the payload;
// purposes are separated purely by signing key, so a leaked access key still
// cannot mint or verify refresh tokens.
type Purpose string

const (
	PurposeAccess  Purpose = "access"
	PurposeRefresh Purpose = "refresh"
)

// refreshKeySuffix is appended to the base secret to derive the refresh key.
const refreshKeySuffix = "-refresh"

// KeyForPurpose derives the HMAC key for a purpose from the one base secret.
// Access tokens use the secret as-is; refresh tokens use a derived key so the
// two token kinds are mutually non-substitutable.
func KeyForPurpose(secret string, p Purpose) []byte {
	if p == PurposeRefresh {
		return []byte(secret + refreshKeySuffix)
	}
	return []byte(secret)
}

// Keyring holds the signer/verifier pair for each token purpose, all derived
// from a single base secret handed in at construction. Nothing in here reads
// the environment; the secret arrives injected from config.
type Keyring struct {
	signers   map[Purpose]Signer
	verifiers map[Purpose]Verifier
	now       func() time.Time
}

// KeyringOption customises keyring construction.
type KeyringOption func(*Keyring)

// WithClock overrides the clock used for expiry validation. Tests use this
// instead of minting already-stale tokens.
func WithClock(now func() time.Time) KeyringOption {
	return func(k *Keyring) { k.now = now }
}

// NewKeyring derives both purpose keys from the base secret and builds the
// signer/verifier pairs.
func NewKeyring(secret string, opts ...KeyringOption) (*Keyring, error) {
	if secret == "" {
		return nil, errors.New("jwtx: empty base secret")
	}

	k := &Keyring{
		signers:   make(map[Purpose]Signer, 2),
		verifiers: make(map[Purpose]Verifier, 2),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(k)
	}

	for _, p := range []Purpose{PurposeAccess, PurposeRefresh} {
		key := KeyForPurpose(secret, p)

		signer, err := NewSignerHS256(key)
		if err != nil {
			return nil, err
		}
		verifier, err := NewVerifierHS256(key, k.now)
		if err != nil {
			return nil, err
		}

		k.signers[p] = signer
		k.verifiers[p] = verifier
	}

	return k, nil
}

// Signer returns the signer for the given purpose.
func (k *Keyring) Signer(p Purpose) Signer { return k.signers[p] }

// Verifier returns the verifier for the given purpose.
func (k *Keyring) Verifier(p Purpose) Verifier { return k.verifiers[p] }
