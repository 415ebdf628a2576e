package http

import (
	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/pkg/authsdk"
)

// Conversions from domain values to the wire types in pkg/authsdk. The
// shapes are deliberately parallel; these exist so internal types never
// leak into responses by accident.

func tokenResponse(p domain.TokenPair) authsdk.TokenResponse {
	return authsdk.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresIn:    p.ExpiresIn,
		User:         userInfo(p.User),
	}
}

func userInfo(u domain.UserInfo) authsdk.UserInfo {
	return authsdk.UserInfo{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

func teamInfo(t domain.TeamInfo) authsdk.TeamInfo {
	return authsdk.TeamInfo{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		Role:        t.Role,
		MemberCount: t.MemberCount,
	}
}

func teamInfos(ts []domain.TeamInfo) []authsdk.TeamInfo {
	out := make([]authsdk.TeamInfo, len(ts))
	for i, t := range ts {
		out[i] = teamInfo(t)
	}
	return out
}

func memberInfo(m domain.TeamMemberInfo) authsdk.TeamMemberInfo {
	return authsdk.TeamMemberInfo{
		UserID:   m.UserID,
		Email:    m.Email,
		Name:     m.Name,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

func memberInfos(ms []domain.TeamMemberInfo) []authsdk.TeamMemberInfo {
	out := make([]authsdk.TeamMemberInfo, len(ms))
	for i, m := range ms {
		out[i] = memberInfo(m)
	}
	return out
}

func permissionsResponse(s domain.PermissionsSummary) authsdk.PermissionsResponse {
	teams := make([]authsdk.TeamPermissions, len(s.TeamPermissions))
	for i, t := range s.TeamPermissions {
		teams[i] = authsdk.TeamPermissions{
			TeamID:      t.TeamID,
			TeamName:    t.TeamName,
			Role:        t.Role,
			Permissions: t.Permissions,
		}
	}
	return authsdk.PermissionsResponse{
		UserID:            s.UserID,
		SystemPermissions: s.SystemPermissions,
		TeamPermissions:   teams,
	}
}

func auditEntries(es []domain.AuditEntry) []authsdk.AuditEntry {
	out := make([]authsdk.AuditEntry, len(es))
	for i, e := range es {
		out[i] = authsdk.AuditEntry{
			ID:           e.ID,
			UserID:       e.UserID,
			TeamID:       e.TeamID,
			Action:       e.Action,
			ResourceType: e.ResourceType,
			ResourceID:   e.ResourceID,
			Details:      e.Details,
			IPAddress:    e.IPAddress,
			UserAgent:    e.UserAgent,
			CreatedAt:    e.CreatedAt,
		}
	}
	return out
}
