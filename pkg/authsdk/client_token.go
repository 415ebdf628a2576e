package authsdk

import (
	"context"
	"net/http"
)

// RegisterTokens creates an account and returns the raw token response.
// Most callers want Register, which wraps the response in a Session.
func (c *SDKClient) RegisterTokens(ctx context.Context, email, name, password string) (*TokenResponse, error) {
	body, err := jsonBody(RegisterRequest{
		Email:    email,
		Name:     name,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/register", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusCreated); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}

// LoginTokens exchanges credentials for the raw token response.
// Most callers want Login, which wraps the response in a Session.
func (c *SDKClient) LoginTokens(ctx context.Context, email, password string) (*TokenResponse, error) {
	body, err := jsonBody(LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}

// RefreshTokens rotates a refresh token for a fresh pair. The presented token
// is revoked server-side in the same operation and cannot be used again.
func (c *SDKClient) RefreshTokens(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	body, err := jsonBody(RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/refresh", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}

// Logout revokes a refresh token. The server acknowledges with 200 whether or
// not the token was live, so a nil error only means the revocation was
// persisted, not that the token existed.
func (c *SDKClient) Logout(ctx context.Context, refreshToken string) error {
	body, err := jsonBody(LogoutRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/logout", body, jsonHeaders)
	if err != nil {
		return err
	}

	var ack SuccessResponse
	return decodeJSON(resp, &ack, http.StatusOK)
}
