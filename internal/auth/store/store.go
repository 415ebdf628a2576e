package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to actively stop people from accidentally starting
// transactions within transactions.
type Store interface {
	Users() Users
	Teams() Teams
	Members() Members
	Resources() Resources
	RevokedTokens() RevokedTokens
	Audit() Audit

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., refresh rotation).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and member invites. Emails are
	// stored lowercased, so callers must lowercase before lookup.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A duplicate email returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser writes the mutable columns of an existing row (name,
	// password_hash, system_role, updated_at) keyed by u.ID.
	UpdateUser(ctx context.Context, u domain.User) error
}

type Teams interface {
	// GetTeamByID returns a team by id.
	GetTeamByID(ctx context.Context, id string) (domain.Team, error)

	// GetTeamBySlug returns a team by its URL slug.
	GetTeamBySlug(ctx context.Context, slug string) (domain.Team, error)

	// CreateTeam inserts a new team. A duplicate slug returns ErrAlreadyExists.
	CreateTeam(ctx context.Context, t domain.Team) error

	// UpdateTeam writes the mutable columns of an existing row (name,
	// description, updated_at) keyed by t.ID. The slug is fixed at creation.
	UpdateTeam(ctx context.Context, t domain.Team) error

	// DeleteTeam cascades to team_members (per schema).
	DeleteTeam(ctx context.Context, teamID string) error

	// ListTeamsForUser returns every team the user belongs to, with the
	// user's role and the member count, ordered by team name.
	ListTeamsForUser(ctx context.Context, userID string) ([]domain.TeamInfo, error)
}

type Members interface {
	// GetMember returns the membership row for a user in a team.
	GetMember(ctx context.Context, teamID, userID string) (domain.TeamMember, error)

	// AddMember inserts a membership row. Adding an existing member returns
	// ErrAlreadyExists.
	AddMember(ctx context.Context, m domain.TeamMember) error

	// UpdateMemberRole changes the role of an existing member.
	UpdateMemberRole(ctx context.Context, teamID, userID string, role domain.TeamRole) error

	// RemoveMember deletes the membership row.
	RemoveMember(ctx context.Context, teamID, userID string) error

	// ListTeamMembers returns the members of a team joined with their user
	// profile, ordered by role seniority then name.
	ListTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMemberInfo, error)

	// CountTeamMembers returns the number of members in a team.
	CountTeamMembers(ctx context.Context, teamID string) (int64, error)
}

type Resources interface {
	// GetResourceByID returns the ownership facts for a resource.
	GetResourceByID(ctx context.Context, id string) (domain.Resource, error)

	// CreateResource registers a resource (id is ULID).
	CreateResource(ctx context.Context, r domain.Resource) error

	// DeleteResource removes a resource registration.
	DeleteResource(ctx context.Context, id string) error

	// ListResourcesByOwner returns all resources registered to an owner,
	// newest first.
	ListResourcesByOwner(ctx context.Context, ownerID string) ([]domain.Resource, error)
}

type RevokedTokens interface {
	// RecordRevokedToken stores a revocation record. Recording the same hash
	// twice is a no-op so logout and rotation can race on the same token.
	RecordRevokedToken(ctx context.Context, t domain.RevokedToken) error

	// IsTokenRevoked reports whether a token hash has been revoked.
	IsTokenRevoked(ctx context.Context, tokenHash string) (bool, error)

	// DeleteExpiredRevokedTokens removes records whose expires_at is at or
	// before now and reports how many were deleted. Housekeeping only; a
	// record is authoritative until swept.
	DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error)
}

type Audit interface {
	// RecordAuditEntry appends one entry to the trail.
	RecordAuditEntry(ctx context.Context, e domain.AuditEntry) error

	// ListAuditForUser returns a user's entries newest first.
	ListAuditForUser(ctx context.Context, userID string, limit, offset int64) ([]domain.AuditEntry, error)

	// ListAuditForTeam returns a team's entries newest first.
	ListAuditForTeam(ctx context.Context, teamID string, limit, offset int64) ([]domain.AuditEntry, error)

	// ListAudit returns entries across all users and teams, newest first.
	ListAudit(ctx context.Context, limit, offset int64) ([]domain.AuditEntry, error)
}
