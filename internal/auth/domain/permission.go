package domain

// Permission is a fine-grained capability, written namespace:action.
type Permission string

const (
	PermDashboardCreate Permission = "dashboard:create"
	PermDashboardRead   Permission = "dashboard:read"
	PermDashboardUpdate Permission = "dashboard:update"
	PermDashboardDelete Permission = "dashboard:delete"
	PermDashboardShare  Permission = "dashboard:share"

	PermDatasetUpload Permission = "dataset:upload"
	PermDatasetRead   Permission = "dataset:read"
	PermDatasetUpdate Permission = "dataset:update"
	PermDatasetDelete Permission = "dataset:delete"
	PermDatasetShare  Permission = "dataset:share"

	PermQueryCreate  Permission = "query:create"
	PermQueryRead    Permission = "query:read"
	PermQueryExecute Permission = "query:execute"
	PermQueryDelete  Permission = "query:delete"

	PermChartCreate Permission = "chart:create"
	PermChartRead   Permission = "chart:read"
	PermChartUpdate Permission = "chart:update"
	PermChartDelete Permission = "chart:delete"
	PermChartExport Permission = "chart:export"

	PermTeamManageMembers  Permission = "team:manage_members"
	PermTeamManageSettings Permission = "team:manage_settings"
	PermTeamManageRoles    Permission = "team:manage_roles"
	PermTeamViewAuditLog   Permission = "team:view_audit_log"

	PermAdminManageUsers      Permission = "admin:manage_users"
	PermAdminManageTeams      Permission = "admin:manage_teams"
	PermAdminManageSystem     Permission = "admin:manage_system"
	PermAdminViewAllAuditLogs Permission = "admin:view_all_audit_logs"
)

func (p Permission) String() string { return string(p) }

// AllPermissions returns every permission in the system, in canonical order.
func AllPermissions() []Permission {
	return []Permission{
		PermDashboardCreate, PermDashboardRead, PermDashboardUpdate,
		PermDashboardDelete, PermDashboardShare,
		PermDatasetUpload, PermDatasetRead, PermDatasetUpdate,
		PermDatasetDelete, PermDatasetShare,
		PermQueryCreate, PermQueryRead, PermQueryExecute, PermQueryDelete,
		PermChartCreate, PermChartRead, PermChartUpdate, PermChartDelete,
		PermChartExport,
		PermTeamManageMembers, PermTeamManageSettings, PermTeamManageRoles,
		PermTeamViewAuditLog,
		PermAdminManageUsers, PermAdminManageTeams, PermAdminManageSystem,
		PermAdminViewAllAuditLogs,
	}
}

// The grant tables are the single source of truth for what each role can do.
// They are static on purpose: role meanings change by shipping code, not by
// editing rows.
var systemRoleGrants = map[SystemRole][]Permission{
	SystemRoleSuperAdmin: AllPermissions(),

	SystemRoleAdmin: {
		PermDashboardCreate, PermDashboardRead, PermDashboardUpdate,
		PermDashboardDelete, PermDashboardShare,
		PermDatasetUpload, PermDatasetRead, PermDatasetUpdate,
		PermDatasetDelete, PermDatasetShare,
		PermQueryCreate, PermQueryRead, PermQueryExecute, PermQueryDelete,
		PermChartCreate, PermChartRead, PermChartUpdate, PermChartDelete,
		PermChartExport,
		PermTeamManageMembers, PermTeamManageSettings,
		PermAdminManageUsers, PermAdminManageTeams,
	},

	SystemRoleUser: {
		PermDashboardCreate, PermDashboardRead, PermDashboardUpdate,
		PermDashboardDelete, PermDashboardShare,
		PermDatasetUpload, PermDatasetRead, PermDatasetUpdate,
		PermDatasetDelete,
		PermQueryCreate, PermQueryRead, PermQueryExecute, PermQueryDelete,
		PermChartCreate, PermChartRead, PermChartUpdate, PermChartDelete,
		PermChartExport,
	},

	SystemRoleReadOnly: {
		PermDashboardRead, PermDatasetRead, PermQueryRead, PermChartRead,
		PermChartExport,
	},
}

var teamRoleGrants = map[TeamRole][]Permission{
	TeamRoleOwner: {
		PermDashboardCreate, PermDashboardRead, PermDashboardUpdate,
		PermDashboardDelete, PermDashboardShare,
		PermDatasetUpload, PermDatasetRead, PermDatasetUpdate,
		PermDatasetDelete, PermDatasetShare,
		PermQueryCreate, PermQueryRead, PermQueryExecute, PermQueryDelete,
		PermChartCreate, PermChartRead, PermChartUpdate, PermChartDelete,
		PermChartExport,
		PermTeamManageMembers, PermTeamManageSettings, PermTeamManageRoles,
		PermTeamViewAuditLog,
	},

	TeamRoleAdmin: {
		PermDashboardCreate, PermDashboardRead, PermDashboardUpdate,
		PermDashboardShare,
		PermDatasetUpload, PermDatasetRead, PermDatasetUpdate,
		PermDatasetShare,
		PermQueryCreate, PermQueryRead, PermQueryExecute,
		PermChartCreate, PermChartRead, PermChartUpdate, PermChartExport,
		PermTeamManageMembers,
	},

	TeamRoleMember: {
		PermDashboardCreate, PermDashboardRead, PermDashboardUpdate,
		PermDatasetUpload, PermDatasetRead,
		PermQueryCreate, PermQueryRead, PermQueryExecute,
		PermChartCreate, PermChartRead, PermChartUpdate, PermChartExport,
	},

	TeamRoleViewer: {
		PermDashboardRead, PermDatasetRead, PermQueryRead, PermChartRead,
		PermChartExport,
	},
}

var (
	systemRoleSets = buildSets(systemRoleGrants)
	teamRoleSets   = buildSets(teamRoleGrants)
)

func buildSets[R comparable](grants map[R][]Permission) map[R]map[Permission]struct{} {
	sets := make(map[R]map[Permission]struct{}, len(grants))
	for role, perms := range grants {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		sets[role] = set
	}
	return sets
}

// Permissions returns the role's grant list in canonical order.
func (r SystemRole) Permissions() []Permission {
	return systemRoleGrants[r]
}

// HasPermission reports whether the role grants p.
func (r SystemRole) HasPermission(p Permission) bool {
	_, ok := systemRoleSets[r][p]
	return ok
}

// Permissions returns the role's grant list in canonical order.
func (r TeamRole) Permissions() []Permission {
	return teamRoleGrants[r]
}

// HasPermission reports whether the role grants p.
func (r TeamRole) HasPermission(p Permission) bool {
	_, ok := teamRoleSets[r][p]
	return ok
}

// PermissionStrings converts a grant list for JSON responses.
func PermissionStrings(perms []Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

// TeamPermissions is one team's block in a user's permission summary.
type TeamPermissions struct {
	TeamID      string   `json:"team_id"`
	TeamName    string   `json:"team_name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// PermissionsSummary is the full permission picture for one user: what the
// system role grants plus what each team membership grants.
type PermissionsSummary struct {
	UserID            string            `json:"user_id"`
	SystemPermissions []string          `json:"system_permissions"`
	TeamPermissions   []TeamPermissions `json:"team_permissions"`
}
