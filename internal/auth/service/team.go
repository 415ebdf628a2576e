package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
	"github.com/aussiebroadwan/pilotba/pkg/idx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

// TeamService owns team CRUD and membership management. Every operation
// except CreateTeam starts from the caller's own membership row; the row's
// role decides what they may touch.
type TeamService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *TeamService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateTeam creates a team and its owner membership in one transaction.
func (s *TeamService) CreateTeam(ctx context.Context, userID, name, description string) (domain.TeamInfo, error) {
	l := slogx.FromContext(ctx)

	if name == "" || len(name) > 255 {
		return domain.TeamInfo{}, badRequest("Team name must be 1-255 characters")
	}

	now := s.now()
	team := domain.Team{
		ID:          idx.New().String(),
		Name:        name,
		Slug:        generateSlug(name),
		Description: description,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Teams().CreateTeam(ctx, team); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return badRequest("A team with this name already exists")
			}
			return err
		}
		return tx.Members().AddMember(ctx, domain.TeamMember{
			TeamID:    team.ID,
			UserID:    userID,
			Role:      domain.TeamRoleOwner,
			CreatedAt: now,
		})
	})
	if err != nil {
		return domain.TeamInfo{}, err
	}

	l.Info("team created",
		slog.String("team_id", team.ID),
		slog.String("slug", team.Slug),
	)
	return domain.TeamInfo{
		ID:          team.ID,
		Name:        team.Name,
		Slug:        team.Slug,
		Description: team.Description,
		Role:        domain.TeamRoleOwner.String(),
		MemberCount: 1,
	}, nil
}

// GetTeam returns the team as seen by one member. Non-members get a denial,
// not a peek at whether the team exists.
func (s *TeamService) GetTeam(ctx context.Context, userID, teamID string) (domain.TeamInfo, error) {
	m, err := s.membership(ctx, userID, teamID)
	if err != nil {
		return domain.TeamInfo{}, err
	}

	team, err := s.Store.Teams().GetTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TeamInfo{}, notFound("Team not found")
		}
		return domain.TeamInfo{}, err
	}

	count, err := s.Store.Members().CountTeamMembers(ctx, teamID)
	if err != nil {
		return domain.TeamInfo{}, err
	}

	return domain.TeamInfo{
		ID:          team.ID,
		Name:        team.Name,
		Slug:        team.Slug,
		Description: team.Description,
		Role:        m.Role.String(),
		MemberCount: count,
	}, nil
}

// ListTeams returns every team the user belongs to with their role in each.
func (s *TeamService) ListTeams(ctx context.Context, userID string) ([]domain.TeamInfo, error) {
	teams, err := s.Store.Teams().ListTeamsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []domain.TeamInfo{}
	}
	return teams, nil
}

// UpdateTeam applies a partial update. Only owners and admins may change
// settings; the patch decides which of name/description move.
func (s *TeamService) UpdateTeam(ctx context.Context, userID, teamID string, patch domain.TeamPatch) (domain.TeamInfo, error) {
	m, err := s.membership(ctx, userID, teamID)
	if err != nil {
		return domain.TeamInfo{}, err
	}
	if !m.Role.CanManage() {
		return domain.TeamInfo{}, forbidden("Only team owners and admins can update team settings")
	}
	if patch.Empty() {
		return domain.TeamInfo{}, badRequest("No fields to update")
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		team, err := tx.Teams().GetTeamByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound("Team not found")
			}
			return err
		}
		patch.Apply(&team)
		team.UpdatedAt = s.now()
		return tx.Teams().UpdateTeam(ctx, team)
	})
	if err != nil {
		return domain.TeamInfo{}, err
	}

	return s.GetTeam(ctx, userID, teamID)
}

// DeleteTeam removes the team and, through cascade, its memberships. Owner
// only.
func (s *TeamService) DeleteTeam(ctx context.Context, userID, teamID string) error {
	m, err := s.membership(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if m.Role != domain.TeamRoleOwner {
		return forbidden("Only team owners can delete teams")
	}

	if err := s.Store.Teams().DeleteTeam(ctx, teamID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("Team not found")
		}
		return err
	}

	slogx.FromContext(ctx).Info("team deleted", slog.String("team_id", teamID))
	return nil
}

// ListMembers returns the team roster. Members only.
func (s *TeamService) ListMembers(ctx context.Context, userID, teamID string) ([]domain.TeamMemberInfo, error) {
	if _, err := s.membership(ctx, userID, teamID); err != nil {
		return nil, err
	}

	members, err := s.Store.Members().ListTeamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.TeamMemberInfo{}
	}
	return members, nil
}

// AddMember adds a user to the team by email. Owners and admins may invite;
// an invited "owner" is quietly downgraded to admin, since ownership only
// moves by transfer.
func (s *TeamService) AddMember(ctx context.Context, inviterID, teamID, email string, role domain.TeamRole) (domain.TeamMemberInfo, error) {
	m, err := s.membership(ctx, inviterID, teamID)
	if err != nil {
		return domain.TeamMemberInfo{}, err
	}
	if !m.Role.CanManage() {
		return domain.TeamMemberInfo{}, forbidden("Only team owners and admins can invite members")
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TeamMemberInfo{}, notFound("User not found with that email")
		}
		return domain.TeamMemberInfo{}, err
	}

	if role == domain.TeamRoleOwner {
		role = domain.TeamRoleAdmin
	}

	now := s.now()
	err = s.Store.Members().AddMember(ctx, domain.TeamMember{
		TeamID:    teamID,
		UserID:    u.ID,
		Role:      role,
		CreatedAt: now,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.TeamMemberInfo{}, badRequest("User is already a member of this team")
		}
		return domain.TeamMemberInfo{}, err
	}

	slogx.FromContext(ctx).Info("team member added",
		slog.String("team_id", teamID),
		slog.String("user_id", u.ID),
		slog.String("role", role.String()),
	)
	return domain.TeamMemberInfo{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     role.String(),
		JoinedAt: now,
	}, nil
}

// UpdateMemberRole changes a member's role. Owner only, and the owner row
// itself is immutable: ownership never changes through this path.
func (s *TeamService) UpdateMemberRole(ctx context.Context, callerID, teamID, targetID string, role domain.TeamRole) error {
	m, err := s.membership(ctx, callerID, teamID)
	if err != nil {
		return err
	}
	if m.Role != domain.TeamRoleOwner {
		return forbidden("Only team owners can change member roles")
	}
	if role == domain.TeamRoleOwner {
		return badRequest("Cannot assign owner role. Transfer ownership instead.")
	}

	target, err := s.Store.Members().GetMember(ctx, teamID, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("Member not found")
		}
		return err
	}
	if target.Role == domain.TeamRoleOwner {
		return badRequest("Cannot change owner's role")
	}

	return s.Store.Members().UpdateMemberRole(ctx, teamID, targetID, role)
}

// RemoveMember removes a member from the team. Owners and admins may remove
// anyone except the owner.
func (s *TeamService) RemoveMember(ctx context.Context, callerID, teamID, targetID string) error {
	m, err := s.membership(ctx, callerID, teamID)
	if err != nil {
		return err
	}
	if !m.Role.CanManage() {
		return forbidden("Only team owners and admins can remove members")
	}

	target, err := s.Store.Members().GetMember(ctx, teamID, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("Member not found")
		}
		return err
	}
	if target.Role == domain.TeamRoleOwner {
		return badRequest("Cannot remove team owner")
	}

	return s.Store.Members().RemoveMember(ctx, teamID, targetID)
}

// Leave removes the caller's own membership. The owner cannot leave; the
// team would be orphaned.
func (s *TeamService) Leave(ctx context.Context, userID, teamID string) error {
	m, err := s.membership(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if m.Role == domain.TeamRoleOwner {
		return badRequest("Team owners cannot leave. Transfer ownership or delete the team.")
	}

	return s.Store.Members().RemoveMember(ctx, teamID, userID)
}

// membership loads the caller's member row, mapping absence to the uniform
// non-member denial.
func (s *TeamService) membership(ctx context.Context, userID, teamID string) (domain.TeamMember, error) {
	m, err := s.Store.Members().GetMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TeamMember{}, forbidden("You are not a member of this team")
		}
		return domain.TeamMember{}, err
	}
	return m, nil
}

// generateSlug turns a display name into its URL slug: lower-cased, letters
// and digits kept, runs of whitespace/dash/underscore collapsed to a single
// dash, every other character dropped, capped at 100 characters.
func generateSlug(name string) string {
	var out []rune
	lastDash := true // swallows leading separators
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			out = append(out, r)
			lastDash = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastDash {
				out = append(out, '-')
				lastDash = true
			}
		}
	}

	if n := len(out); n > 0 && out[n-1] == '-' {
		out = out[:n-1]
	}
	if len(out) > 100 {
		out = out[:100]
	}
	return string(out)
}
