package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Teams
// ============================================================================

// CreateTeam creates a team; the caller becomes its owner.
func (s *Session) CreateTeam(ctx context.Context, name, description string) (*TeamInfo, error) {
	body, err := jsonBody(CreateTeamRequest{Name: name, Description: description})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/teams", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var team TeamInfo
	if err := decodeJSON(resp, &team, http.StatusCreated); err != nil {
		return nil, err
	}

	return &team, nil
}

// ListTeams retrieves every team the caller belongs to.
func (s *Session) ListTeams(ctx context.Context) ([]TeamInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/teams", nil, nil)
	if err != nil {
		return nil, err
	}

	var teams []TeamInfo
	if err := decodeJSON(resp, &teams, http.StatusOK); err != nil {
		return nil, err
	}

	return teams, nil
}

// GetTeam retrieves one team the caller belongs to.
func (s *Session) GetTeam(ctx context.Context, teamID string) (*TeamInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/teams/"+url.PathEscape(teamID), nil, nil)
	if err != nil {
		return nil, err
	}

	var team TeamInfo
	if err := decodeJSON(resp, &team, http.StatusOK); err != nil {
		return nil, err
	}

	return &team, nil
}

// UpdateTeam partially updates a team. Nil fields in the request are left
// unchanged. Owners and admins only.
func (s *Session) UpdateTeam(ctx context.Context, teamID string, req UpdateTeamRequest) (*TeamInfo, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/teams/"+url.PathEscape(teamID), body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var team TeamInfo
	if err := decodeJSON(resp, &team, http.StatusOK); err != nil {
		return nil, err
	}

	return &team, nil
}

// DeleteTeam deletes a team and all its memberships. Owner only.
func (s *Session) DeleteTeam(ctx context.Context, teamID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/teams/"+url.PathEscape(teamID), nil, nil)
	if err != nil {
		return err
	}

	var ack SuccessResponse
	return decodeJSON(resp, &ack, http.StatusOK)
}

// ============================================================================
// Members
// ============================================================================

// ListMembers retrieves a team's members. Any member may look.
func (s *Session) ListMembers(ctx context.Context, teamID string) ([]TeamMemberInfo, error) {
	path := "/v1/teams/" + url.PathEscape(teamID) + "/members"

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var members []TeamMemberInfo
	if err := decodeJSON(resp, &members, http.StatusOK); err != nil {
		return nil, err
	}

	return members, nil
}

// AddMember adds an existing account to the team by email. Owners and admins
// only; a requested owner role comes back as admin.
func (s *Session) AddMember(ctx context.Context, teamID, email, role string) (*TeamMemberInfo, error) {
	body, err := jsonBody(AddMemberRequest{Email: email, Role: role})
	if err != nil {
		return nil, err
	}

	path := "/v1/teams/" + url.PathEscape(teamID) + "/members"

	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var member TeamMemberInfo
	if err := decodeJSON(resp, &member, http.StatusCreated); err != nil {
		return nil, err
	}

	return &member, nil
}

// UpdateMemberRole changes a member's team role. Owner only.
func (s *Session) UpdateMemberRole(ctx context.Context, teamID, userID, role string) error {
	body, err := jsonBody(UpdateMemberRoleRequest{Role: role})
	if err != nil {
		return err
	}

	path := "/v1/teams/" + url.PathEscape(teamID) + "/members/" + url.PathEscape(userID)

	resp, err := s.doAuthRequest(ctx, http.MethodPatch, path, body, jsonHeaders)
	if err != nil {
		return err
	}

	var ack SuccessResponse
	return decodeJSON(resp, &ack, http.StatusOK)
}

// RemoveMember removes a member from the team. Owners and admins only.
func (s *Session) RemoveMember(ctx context.Context, teamID, userID string) error {
	path := "/v1/teams/" + url.PathEscape(teamID) + "/members/" + url.PathEscape(userID)

	resp, err := s.doAuthRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}

	var ack SuccessResponse
	return decodeJSON(resp, &ack, http.StatusOK)
}

// LeaveTeam removes the caller's own membership. The owner cannot leave.
func (s *Session) LeaveTeam(ctx context.Context, teamID string) error {
	path := "/v1/teams/" + url.PathEscape(teamID) + "/leave"

	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, nil, nil)
	if err != nil {
		return err
	}

	var ack SuccessResponse
	return decodeJSON(resp, &ack, http.StatusOK)
}

// ============================================================================
// Audit
// ============================================================================

// TeamAuditTrail retrieves a team's recorded actions, newest first. Requires
// the team's view_audit_log permission, held only by the owner.
func (s *Session) TeamAuditTrail(ctx context.Context, teamID string, limit, offset int64) ([]AuditEntry, error) {
	path := "/v1/teams/" + url.PathEscape(teamID) + "/audit" + auditQuery(limit, offset)

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
