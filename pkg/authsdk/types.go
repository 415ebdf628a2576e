package authsdk

import "time"

// ============================================================================
// Response Envelopes
// ============================================================================

// ErrorResponse is the JSON error envelope used by every non-2xx response.
// Client code should usually work with the APIError type from errors.go,
// which this parses into.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "unauthorized",
	// "forbidden", "not_found", "bad_request", "store_unavailable")
	Error string `json:"error"`

	// Message is a human-readable description of what went wrong
	Message string `json:"message,omitempty"`

	// Status mirrors the HTTP status code into the body
	Status int `json:"status"`
}

// SuccessResponse acknowledges a mutation that has no body to return
// (logout, delete team, remove member, leave team).
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest creates a new account.
type RegisterRequest struct {
	// Email doubles as the login identifier; stored lowercase
	Email string `json:"email"`

	// Password must be 8+ characters with upper case, lower case and a digit
	Password string `json:"password"`

	// Name is the display name
	Name string `json:"name"`
}

// LoginRequest exchanges credentials for a token pair.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a fresh pair. The presented
// token is revoked in the same operation and cannot be used again.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest revokes a refresh token. The token is optional; logout
// without one still succeeds.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// TokenResponse is returned by register, login and refresh.
type TokenResponse struct {
	// AccessToken is the short-lived JWT presented as a bearer credential
	AccessToken string `json:"access_token"`

	// RefreshToken is the long-lived JWT exchanged for new pairs; single use
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds
	ExpiresIn int64 `json:"expires_in"`

	// User is the account the tokens were minted for
	User UserInfo `json:"user"`
}

// ============================================================================
// User Types
// ============================================================================

// UserInfo is the public shape of an account, embedded in token responses
// and returned by GET /v1/me.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	// Role is the system role (superadmin, admin, user, readonly)
	Role string `json:"role"`
}

// ============================================================================
// Permission Types
// ============================================================================

// TeamPermissions is one team's slice of a permissions summary.
type TeamPermissions struct {
	TeamID      string   `json:"team_id"`
	TeamName    string   `json:"team_name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// PermissionsResponse is returned by GET /v1/me/permissions: everything the
// caller may do, system-wide and per team.
type PermissionsResponse struct {
	UserID            string            `json:"user_id"`
	SystemPermissions []string          `json:"system_permissions"`
	TeamPermissions   []TeamPermissions `json:"team_permissions"`
}

// ============================================================================
// Team Types
// ============================================================================

// CreateTeamRequest creates a team; the caller becomes its owner.
type CreateTeamRequest struct {
	// Name must be 1-255 characters; the URL slug is derived from it
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateTeamRequest is a partial update: nil fields are left unchanged,
// empty-string fields are written as empty.
type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AddMemberRequest invites an existing account into a team by email.
type AddMemberRequest struct {
	Email string `json:"email"`

	// Role is one of owner, admin, member, viewer. Requests for owner are
	// coerced to admin; ownership never moves through this endpoint.
	Role string `json:"role"`
}

// UpdateMemberRoleRequest changes a member's team role.
type UpdateMemberRoleRequest struct {
	Role string `json:"role"`
}

// TeamInfo is a team as seen by one member: the shared fields plus that
// member's own role and the current member count.
type TeamInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Role        string `json:"role"`
	MemberCount int64  `json:"member_count"`
}

// TeamMemberInfo is one membership row joined with the member's account.
type TeamMemberInfo struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// ============================================================================
// Audit Types
// ============================================================================

// AuditEntry is one recorded action. Optional fields are empty when the
// entry has no team, resource or transport context.
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

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is the service uptime as a duration string (e.g. "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the build version string
	Version string `json:"version,omitempty"`

	// Checks carries per-dependency results, only on /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks is the per-dependency readiness detail.
type HealthChecks struct {
	// Database is "ok" or an error description
	Database string `json:"database"`
}
