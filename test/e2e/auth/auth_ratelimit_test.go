package auth_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/pilotba/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies that the login endpoint is rate limited.
// This endpoint has strict limits (5 req/min) to prevent brute force attacks.
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	// Make requests until we hit the rate limit (strict limit is 5 req/min)
	// We'll make 6 requests rapidly and expect the 6th to be rate limited
	var lastErr error
	for i := range 6 {
		_, err := client.Login(ctx, "target@pilotba.test", "WrongPass1")
		if i < 5 {
			// First 5 should fail with the uniform 401, not a rate limit
			require.Error(t, err, "Invalid credentials should fail")
			require.False(t, authsdk.IsRateLimited(err),
				"Should not be rate limited yet (request %d)", i+1)
			require.True(t, authsdk.IsUnauthorized(err),
				"Pre-limit failures should be the uniform 401 (request %d)", i+1)
		} else {
			// 6th request should be rate limited
			lastErr = err
		}
	}

	require.Error(t, lastErr)
	require.True(t, authsdk.IsRateLimited(lastErr), "Should be rate limited after 5 requests")
	t.Logf("Successfully rate limited after 5 requests to /v1/auth/login")
}

// TestRateLimitLoginKeyedByEmail verifies the login limiter keys on IP plus
// the email in the body: exhausting one email's budget must not block
// attempts against a different email from the same IP.
func TestRateLimitLoginKeyedByEmail(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	// Burn the whole strict budget for one address
	for range 5 {
		_, err := client.Login(ctx, "victim@pilotba.test", "WrongPass1")
		require.Error(t, err)
	}

	_, err := client.Login(ctx, "victim@pilotba.test", "WrongPass1")
	require.True(t, authsdk.IsRateLimited(err), "Victim's bucket should be exhausted")

	// A different address from the same IP still has its own bucket
	_, err = client.Login(ctx, "other@pilotba.test", "WrongPass1")
	require.False(t, authsdk.IsRateLimited(err), "Other emails should not share the bucket")
	require.True(t, authsdk.IsUnauthorized(err))

	t.Logf("Login rate limiting is keyed per IP+email")
}

// TestRateLimitRegisterEndpoint verifies registration is strictly limited
// by IP to stop bulk account creation.
func TestRateLimitRegisterEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	var lastErr error
	for i := range 6 {
		email := fmt.Sprintf("bulk%d@pilotba.test", i)
		_, err := client.Register(ctx, email, "Bulk", defaultPassword)
		if i < 5 {
			require.NoError(t, err, "Registration %d should succeed before the limit", i+1)
		} else {
			lastErr = err
		}
	}

	require.Error(t, lastErr)
	require.True(t, authsdk.IsRateLimited(lastErr), "Should be rate limited after 5 registrations")
	t.Logf("Successfully rate limited /v1/auth/register")
}

// TestRateLimitHeadersPresent verifies a rate limited response carries the
// retry headers and the standard JSON error envelope.
func TestRateLimitHeadersPresent(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	httpClient := &http.Client{}
	loginBody := `{"email":"probe@pilotba.test","password":"WrongPass1"}`

	// Consume the strict budget (using direct HTTP calls)
	for range 5 {
		req, _ := http.NewRequest("POST", baseURL+"/v1/auth/login", strings.NewReader(loginBody))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := httpClient.Do(req)
		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
	}

	// One more request that should be rate limited; check the headers
	req, err := http.NewRequest("POST", baseURL+"/v1/auth/login", strings.NewReader(loginBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "Should receive 429 status")

	retryAfter := resp.Header.Get("Retry-After")
	require.NotEmpty(t, retryAfter, "Should include Retry-After header")

	rateLimit := resp.Header.Get("X-RateLimit-Limit")
	require.NotEmpty(t, rateLimit, "Should include X-RateLimit-Limit header")

	rateLimitWindow := resp.Header.Get("X-RateLimit-Window")
	require.NotEmpty(t, rateLimitWindow, "Should include X-RateLimit-Window header")

	// Body is the standard error envelope
	contentType := resp.Header.Get("Content-Type")
	require.Contains(t, contentType, "application/json", "Rate limit response should be JSON")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "rate_limit_exceeded", "Error code should be rate_limit_exceeded")
	require.Contains(t, string(body), "message", "Response should carry a message")

	t.Logf("Rate limit headers present: Retry-After=%s, Limit=%s, Window=%s",
		retryAfter, rateLimit, rateLimitWindow)
}

// TestRateLimitHealthEndpoints verifies health check endpoints have lenient limits.
// Monitoring systems poll these frequently, so they need higher limits.
func TestRateLimitHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	// Lenient limit is 100 req/min, test we can make 30 requests to both endpoints
	for i := range 30 {
		health, err := client.GetLiveness(t.Context())
		require.NoError(t, err, "Liveness request %d should not be rate limited", i+1)
		require.Equal(t, "ok", health.Status)

		health, err = client.GetReadiness(t.Context())
		require.NoError(t, err, "Readiness request %d should not be rate limited", i+1)
		require.Equal(t, "ok", health.Status)
	}

	t.Logf("Successfully made 30 requests each to /livez and /readyz without rate limiting")
}

// TestRateLimitAuthenticatedReads verifies authenticated read endpoints have
// lenient limits. Regular profile reads should allow reasonable volumes.
func TestRateLimitAuthenticatedReads(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	session, err := client.Register(ctx, "reader@pilotba.test", "Reader", defaultPassword)
	require.NoError(t, err)

	// Lenient limit is 100 req/min, so we should be able to make many requests
	for i := range 30 {
		user, err := session.Me(ctx)
		require.NoError(t, err, "Request %d should not be rate limited", i+1)
		require.Equal(t, "reader@pilotba.test", user.Email)
	}

	t.Logf("Successfully made 30 requests to /v1/me without rate limiting")
}

// TestRateLimitConcurrentRequests verifies rate limiting works correctly under concurrent load.
func TestRateLimitConcurrentRequests(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	// Test concurrent requests to the liveness endpoint (lenient limit)
	httpClient := &http.Client{Timeout: 5 * time.Second}

	const numRequests = 20
	results := make(chan error, numRequests)

	// Launch concurrent requests
	for i := range numRequests {
		go func(reqNum int) {
			resp, err := httpClient.Get(baseURL + "/livez")
			if err != nil {
				results <- fmt.Errorf("request %d failed: %w", reqNum, err)
				return
			}
			defer resp.Body.Close()
			io.Copy(io.Discard, resp.Body)

			if resp.StatusCode != http.StatusOK {
				results <- fmt.Errorf("request %d got status %d", reqNum, resp.StatusCode)
				return
			}
			results <- nil
		}(i)
	}

	// Collect results
	successCount := 0
	for range numRequests {
		err := <-results
		if err == nil {
			successCount++
		} else {
			t.Logf("Concurrent request error: %v", err)
		}
	}

	// With the lenient limit (100/min), all 20 concurrent requests should succeed
	require.GreaterOrEqual(t, successCount, 15, "Most concurrent requests should succeed")
	t.Logf("Successfully handled %d/%d concurrent requests", successCount, numRequests)
}
