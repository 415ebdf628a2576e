package domain

import "time"

// TokenPair is what login and refresh return: a short-lived access token and
// a long-lived refresh token, both JWTs signed with purpose-separated keys.
type TokenPair struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"` // always "Bearer"
	ExpiresIn    int64    `json:"expires_in"` // seconds until the access token expires
	User         UserInfo `json:"user"`
}

// RevokedToken is a tombstone for a refresh token that must never validate
// again. Only the fingerprint is stored, never the token itself. Rows become
// garbage once ExpiresAt passes, since the token would fail expiry anyway.
type RevokedToken struct {
	TokenHash string // base64url SHA-256 fingerprint
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
