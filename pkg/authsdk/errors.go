package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in the "error" field of error responses.
const (
	ErrorCodeUnauthorized      = "unauthorized"
	ErrorCodeForbidden         = "forbidden"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeBadRequest        = "bad_request"
	ErrorCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrorCodeStoreUnavailable  = "store_unavailable"
	ErrorCodeInternalError     = "internal_error"
)

// APIError is the typed error the SDK returns for every non-2xx response.
// It carries the transport status plus the code and message from the body,
// so callers can branch on either.
type APIError struct {
	// StatusCode is the HTTP status of the response
	StatusCode int

	// Code is the machine-readable error code from the body
	Code string

	// Message is the human-readable message from the body, may be empty
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnauthorized reports whether err is an APIError with a 401 status.
// Expired, revoked, forged and missing credentials all look identical from
// the client side; the server deliberately does not say which.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether err is an APIError with a 403 status: the
// caller is authenticated but lacks permission for what it asked.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether err is an APIError with a 429 status.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

// IsRetryable reports whether err is an APIError worth retrying: a rate
// limit or a temporarily unavailable backing store.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests ||
		apiErr.StatusCode == http.StatusServiceUnavailable
}

// parseErrorResponse turns a non-2xx response into an *APIError. Returns nil
// for 2xx responses. Bodies that are not the standard envelope still produce
// a usable error from the status line alone.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Error,
			Message:    errResp.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeInternalError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
