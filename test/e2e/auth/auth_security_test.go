package auth_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/pilotba/pkg/authsdk"
	"github.com/aussiebroadwan/pilotba/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// TestInvalidCredentials verifies that login failures are rejected with the
// uniform 401 whether the email or the password was wrong.
func TestInvalidCredentials(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	registerUser(t, client, "leo@pilotba.test", "Leo")

	_, err := client.Login(t.Context(), "leo@pilotba.test", "wrong-password")
	assertUnauthorized(t, err, "Wrong password should be rejected")

	_, err = client.Login(t.Context(), "nobody@pilotba.test", defaultPassword)
	assertUnauthorized(t, err, "Unknown email should be rejected")

	t.Logf("Invalid credentials correctly rejected with 401")
}

// TestLoginRejectionsAreIndistinguishable compares the raw response bodies
// for a wrong password and an unknown email. They must be byte-identical so
// a caller cannot enumerate registered addresses.
func TestLoginRejectionsAreIndistinguishable(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	registerUser(t, client, "mia@pilotba.test", "Mia")

	wrongPassword := postLogin(t, baseURL, `{"email":"mia@pilotba.test","password":"Wrong123!"}`)
	unknownEmail := postLogin(t, baseURL, `{"email":"ghost@pilotba.test","password":"Wrong123!"}`)

	require.Equal(t, http.StatusUnauthorized, wrongPassword.status)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.status)
	require.Equal(t, wrongPassword.body, unknownEmail.body,
		"Wrong-password and unknown-email responses must be identical")

	t.Logf("Login rejection body: %s", strings.TrimSpace(wrongPassword.body))
}

// TestInvalidAccessToken verifies that authenticated endpoints reject
// invalid tokens.
func TestInvalidAccessToken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	// A session around a garbage token; the large expiresIn stops the SDK
	// from attempting a refresh first.
	invalidSession := client.NewSessionFromTokens("invalid-token-12345", "", 3600)

	_, err := invalidSession.Me(t.Context())
	assertUnauthorized(t, err, "Invalid token should be rejected")

	t.Logf("Invalid token correctly rejected with 401")
}

// TestUniformUnauthorizedResponse drives every authentication failure mode
// against GET /v1/me and requires the exact same response for each: missing
// header, non-bearer header, garbage token, token signed with the wrong key,
// expired token, and a refresh token presented as an access token. Identical
// responses mean a probing client learns nothing about which check failed.
func TestUniformUnauthorizedResponse(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	now := time.Now()

	// Tokens minted with the container's own secret
	keyring, err := jwtx.NewKeyring(testSecret)
	require.NoError(t, err)

	expired, err := keyring.Signer(jwtx.PurposeAccess).
		Sign(jwtx.NewClaims("some-user", "x@pilotba.test", "X", -time.Hour, now))
	require.NoError(t, err)

	refreshAsAccess, err := keyring.Signer(jwtx.PurposeRefresh).
		Sign(jwtx.NewClaims("some-user", "x@pilotba.test", "X", time.Hour, now))
	require.NoError(t, err)

	// A structurally valid token signed by somebody else entirely
	foreign, err := jwtx.NewKeyring("attacker-controlled-secret")
	require.NoError(t, err)
	forged, err := foreign.Signer(jwtx.PurposeAccess).
		Sign(jwtx.NewClaims("some-user", "x@pilotba.test", "X", time.Hour, now))
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":   "",
		"not bearer":       "Basic dXNlcjpwYXNz",
		"garbage token":    "Bearer not-a-jwt",
		"forged signature": "Bearer " + forged,
		"expired token":    "Bearer " + expired,
		"wrong purpose":    "Bearer " + refreshAsAccess,
	}

	var reference rawResponse
	for name, header := range cases {
		resp := getMe(t, baseURL, header)

		require.Equal(t, http.StatusUnauthorized, resp.status, "case %q", name)
		require.NotEmpty(t, resp.wwwAuthenticate, "case %q should carry WWW-Authenticate", name)

		if reference.body == "" {
			reference = resp
			continue
		}
		require.Equal(t, reference.body, resp.body,
			"case %q must be indistinguishable from the others", name)
	}

	t.Logf("All %d failure modes produce the identical 401", len(cases))
}

type rawResponse struct {
	status          int
	body            string
	wwwAuthenticate string
}

func getMe(t *testing.T, baseURL, authHeader string) rawResponse {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, baseURL+"/v1/me", nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return rawResponse{
		status:          resp.StatusCode,
		body:            string(body),
		wwwAuthenticate: resp.Header.Get("WWW-Authenticate"),
	}
}

func postLogin(t *testing.T, baseURL, body string) rawResponse {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost,
		baseURL+"/v1/auth/login", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return rawResponse{status: resp.StatusCode, body: string(respBody)}
}

// TestTokenResponsesAreNotCacheable verifies token-bearing responses carry
// no-store cache headers.
func TestTokenResponsesAreNotCacheable(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	registerUser(t, client, "nina@pilotba.test", "Nina")

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost,
		baseURL+"/v1/auth/login",
		strings.NewReader(`{"email":"nina@pilotba.test","password":"`+defaultPassword+`"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	require.Equal(t, "no-cache", resp.Header.Get("Pragma"))
}
