package domain

// SystemRole is the closed set of platform-wide roles. Stored as text; any
// value outside the set is treated as the least-privileged role on read.
type SystemRole string

const (
	SystemRoleSuperAdmin SystemRole = "superadmin"
	SystemRoleAdmin      SystemRole = "admin"
	SystemRoleUser       SystemRole = "user"
	SystemRoleReadOnly   SystemRole = "readonly"
)

// ParseSystemRole maps a stored role string onto the closed enum. The parse
// is total: unknown or corrupted values come back as readonly, so a bad row
// can never grant more than read access.
func ParseSystemRole(s string) SystemRole {
	switch SystemRole(s) {
	case SystemRoleSuperAdmin, SystemRoleAdmin, SystemRoleUser, SystemRoleReadOnly:
		return SystemRole(s)
	default:
		return SystemRoleReadOnly
	}
}

func (r SystemRole) String() string { return string(r) }

// Valid reports whether r is one of the defined system roles.
func (r SystemRole) Valid() bool {
	switch r {
	case SystemRoleSuperAdmin, SystemRoleAdmin, SystemRoleUser, SystemRoleReadOnly:
		return true
	}
	return false
}

// TeamRole is the closed set of per-team membership roles.
type TeamRole string

const (
	TeamRoleOwner  TeamRole = "owner"
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
	TeamRoleViewer TeamRole = "viewer"
)

// ParseTeamRole maps a stored role string onto the closed enum. Unknown
// values come back as viewer, the least-privileged team role.
func ParseTeamRole(s string) TeamRole {
	switch TeamRole(s) {
	case TeamRoleOwner, TeamRoleAdmin, TeamRoleMember, TeamRoleViewer:
		return TeamRole(s)
	default:
		return TeamRoleViewer
	}
}

func (r TeamRole) String() string { return string(r) }

// Valid reports whether r is one of the defined team roles.
func (r TeamRole) Valid() bool {
	switch r {
	case TeamRoleOwner, TeamRoleAdmin, TeamRoleMember, TeamRoleViewer:
		return true
	}
	return false
}

// CanManage reports whether the role may change team settings and membership.
func (r TeamRole) CanManage() bool {
	return r == TeamRoleOwner || r == TeamRoleAdmin
}
