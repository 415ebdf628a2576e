package authsdk

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIErrorError(t *testing.T) {
	t.Parallel()

	t.Run("with message", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Code: "not_found", Message: "Team not found"}
		require.Equal(t, "not_found: Team not found", err.Error())
	})

	t.Run("without message", func(t *testing.T) {
		err := &APIError{StatusCode: 500, Code: "internal_error"}
		require.Equal(t, "internal_error (HTTP 500)", err.Error())
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	unauthorized := &APIError{StatusCode: http.StatusUnauthorized, Code: ErrorCodeUnauthorized}
	forbidden := &APIError{StatusCode: http.StatusForbidden, Code: ErrorCodeForbidden}
	notFound := &APIError{StatusCode: http.StatusNotFound, Code: ErrorCodeNotFound}
	rateLimited := &APIError{StatusCode: http.StatusTooManyRequests, Code: ErrorCodeRateLimitExceeded}
	unavailable := &APIError{StatusCode: http.StatusServiceUnavailable, Code: ErrorCodeStoreUnavailable}
	plain := errors.New("dial tcp: connection refused")

	t.Run("IsUnauthorized", func(t *testing.T) {
		require.True(t, IsUnauthorized(unauthorized))
		require.False(t, IsUnauthorized(forbidden))
		require.False(t, IsUnauthorized(plain))
		require.False(t, IsUnauthorized(nil))
	})

	t.Run("IsForbidden", func(t *testing.T) {
		require.True(t, IsForbidden(forbidden))
		require.False(t, IsForbidden(unauthorized))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		require.True(t, IsNotFound(notFound))
		require.False(t, IsNotFound(forbidden))
	})

	t.Run("IsRateLimited", func(t *testing.T) {
		require.True(t, IsRateLimited(rateLimited))
		require.False(t, IsRateLimited(unauthorized))
	})

	t.Run("IsRetryable", func(t *testing.T) {
		require.True(t, IsRetryable(rateLimited))
		require.True(t, IsRetryable(unavailable))
		require.False(t, IsRetryable(unauthorized))
		require.False(t, IsRetryable(plain))
	})

	t.Run("unwraps wrapped errors", func(t *testing.T) {
		wrapped := fmt.Errorf("fetching profile: %w", unauthorized)
		require.True(t, IsUnauthorized(wrapped))
	})
}

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("nil for 2xx", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusOK}
		require.NoError(t, parseErrorResponse(resp, nil))
	})

	t.Run("standard envelope", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusUnauthorized}
		body := []byte(`{"error":"unauthorized","message":"unauthorized"}`)

		err := parseErrorResponse(resp, body)
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, ErrorCodeUnauthorized, apiErr.Code)
		require.Equal(t, "unauthorized", apiErr.Message)
	})

	t.Run("non-envelope body falls back to status", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusBadGateway}
		body := []byte("<html>upstream error</html>")

		err := parseErrorResponse(resp, body)
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		require.Equal(t, ErrorCodeInternalError, apiErr.Code)
		require.Contains(t, apiErr.Message, "502")
	})
}
