package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ============================================================================
// Profile
// ============================================================================

// Me retrieves the authenticated user's profile, read fresh from the server.
// Automatically refreshes the access token if expired.
func (s *Session) Me(ctx context.Context) (*UserInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var user UserInfo
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// MyPermissions retrieves everything the caller may do: system permissions
// plus a block per team membership.
func (s *Session) MyPermissions(ctx context.Context) (*PermissionsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me/permissions", nil, nil)
	if err != nil {
		return nil, err
	}

	var perms PermissionsResponse
	if err := decodeJSON(resp, &perms, http.StatusOK); err != nil {
		return nil, err
	}

	return &perms, nil
}

// ============================================================================
// Audit
// ============================================================================

// MyAuditTrail retrieves the caller's own recorded actions, newest first.
// Zero limit and offset use the server defaults.
func (s *Session) MyAuditTrail(ctx context.Context, limit, offset int64) ([]AuditEntry, error) {
	path := "/v1/me/audit" + auditQuery(limit, offset)

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var entries []AuditEntry
	if err := decodeJSON(resp, &entries, http.StatusOK); err != nil {
		return nil, err
	}

	return entries, nil
}

// auditQuery encodes pagination for the audit trail endpoints. Zero values
// are omitted so the server applies its own defaults.
func auditQuery(limit, offset int64) string {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.FormatInt(limit, 10))
	}
	if offset > 0 {
		q.Set("offset", strconv.FormatInt(offset, 10))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
