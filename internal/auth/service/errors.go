package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrTokenRevoked       = errors.New("token_revoked")
	ErrStoreUnavailable   = errors.New("store_unavailable")

	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not_found")
	ErrBadRequest = errors.New("bad_request")
)

// RequestError pairs one of the taxonomy sentinels with a client-safe
// message, so handlers can pick the status with errors.Is and still show a
// specific reason. The message never carries role or ownership details
// beyond what the denied action itself implies.
type RequestError struct {
	Kind error
	Msg  string
}

func (e *RequestError) Error() string { return e.Msg }

func (e *RequestError) Unwrap() error { return e.Kind }

func forbidden(msg string) error { return &RequestError{Kind: ErrForbidden, Msg: msg} }

func notFound(msg string) error { return &RequestError{Kind: ErrNotFound, Msg: msg} }

func badRequest(msg string) error { return &RequestError{Kind: ErrBadRequest, Msg: msg} }
