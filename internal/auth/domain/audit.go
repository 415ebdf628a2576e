package domain

import "time"

// Audit action names. Dotted namespace.action, matching the permission
// namespaces so a log line and the permission that allowed it read alike.
const (
	AuditUserLogin    = "user.login"
	AuditUserLogout   = "user.logout"
	AuditUserRegister = "user.register"
	AuditTokenRefresh = "user.token_refresh"

	AuditTeamCreate       = "team.create"
	AuditTeamUpdate       = "team.update"
	AuditTeamDelete       = "team.delete"
	AuditMemberAdd        = "team.member_add"
	AuditMemberRemove     = "team.member_remove"
	AuditMemberRoleChange = "team.member_role_change"
)

// AuditEntry is one recorded action. Everything except Action is optional;
// empty strings are stored as NULL. Details carries free-form JSON the store
// treats as opaque text.
type AuditEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id,omitempty"`
	TeamID       string    `json:"team_id,omitempty"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type,omitempty"`
	ResourceID   string    `json:"resource_id,omitempty"`
	Details      string    `json:"details,omitempty"`
	IPAddress    string    `json:"ip_address,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
