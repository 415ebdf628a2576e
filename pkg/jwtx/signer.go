package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs JWTs with a symmetric HMAC-SHA-256 key.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 creates an HS256 signer from raw key bytes. The same bytes
// must be handed to the matching verifier; there is no key to publish.
func NewSignerHS256(key []byte) (Signer, error) {
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty HMAC key")
	}
	return &HS256Signer{key: key}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}
