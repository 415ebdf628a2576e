package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/pilotba/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginAndRefresh tests the complete flow:
// 1. Register an account
// 2. Login with credentials
// 3. Refresh the token pair
// 4. Verify token rotation (new tokens are different from old tokens)
func TestLoginAndRefresh(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	registerUser(t, client, "dave@pilotba.test", "Dave")

	// Login
	loginResp, err := client.LoginTokens(t.Context(), "dave@pilotba.test", defaultPassword)
	require.NoError(t, err)
	assertTokenResponse(t, loginResp)

	t.Logf("Login successful for user %s", loginResp.User.ID)

	// Refresh token
	refreshResp, err := client.RefreshTokens(t.Context(), loginResp.RefreshToken)
	require.NoError(t, err)
	assertTokenResponse(t, refreshResp)

	// Verify token rotation
	require.NotEqual(t, loginResp.AccessToken, refreshResp.AccessToken, "Access token should be rotated")
	require.NotEqual(t, loginResp.RefreshToken, refreshResp.RefreshToken, "Refresh token should be rotated")
	require.Equal(t, loginResp.User.ID, refreshResp.User.ID, "Refresh should keep the same user")

	t.Logf("Refresh successful, tokens rotated")
}

// TestRefreshTokenSingleUse verifies a refresh token dies when it is used:
// replaying the consumed token must yield the uniform 401.
func TestRefreshTokenSingleUse(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	registerUser(t, client, "erin@pilotba.test", "Erin")

	loginResp, err := client.LoginTokens(t.Context(), "erin@pilotba.test", defaultPassword)
	require.NoError(t, err)

	// First use rotates the pair
	rotated, err := client.RefreshTokens(t.Context(), loginResp.RefreshToken)
	require.NoError(t, err)

	// Replaying the consumed token must fail
	_, err = client.RefreshTokens(t.Context(), loginResp.RefreshToken)
	assertUnauthorized(t, err, "Replayed refresh token should be rejected")

	// The rotated token is still live
	_, err = client.RefreshTokens(t.Context(), rotated.RefreshToken)
	require.NoError(t, err, "Rotated refresh token should still work")

	t.Logf("Refresh tokens are single use")
}

// TestRefreshWithAccessToken verifies the purpose binding: an access token
// presented to the refresh endpoint is rejected even though it is a valid,
// unexpired token signed by the same service.
func TestRefreshWithAccessToken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	registerUser(t, client, "frank@pilotba.test", "Frank")

	loginResp, err := client.LoginTokens(t.Context(), "frank@pilotba.test", defaultPassword)
	require.NoError(t, err)

	_, err = client.RefreshTokens(t.Context(), loginResp.AccessToken)
	assertUnauthorized(t, err, "Access token presented as refresh token should be rejected")

	t.Logf("Access tokens cannot be used as refresh tokens")
}

// TestSessionAutoRefresh verifies the SDK session transparently refreshes
// when constructed with an already-expired access token.
func TestSessionAutoRefresh(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	registerUser(t, client, "grace@pilotba.test", "Grace")

	loginResp, err := client.LoginTokens(t.Context(), "grace@pilotba.test", defaultPassword)
	require.NoError(t, err)

	// expiresIn of 0 makes the session treat the access token as expired,
	// forcing a refresh on first use.
	session := client.NewSessionFromTokens(loginResp.AccessToken, loginResp.RefreshToken, 0)

	user, err := session.Me(t.Context())
	require.NoError(t, err, "Session should refresh and retry transparently")
	require.Equal(t, "grace@pilotba.test", user.Email)
	require.NotEqual(t, loginResp.RefreshToken, session.RefreshToken(),
		"Auto-refresh should have rotated the refresh token")

	t.Logf("Session auto-refresh works")
}
