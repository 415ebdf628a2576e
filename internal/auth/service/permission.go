package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
)

// PermissionService answers allow/deny questions from the persisted role and
// ownership facts. Every lookup miss resolves to deny, never to an error the
// caller could mistake for an allow.
type PermissionService struct {
	Store store.Store
}

// HasSystemPermission reports whether the user's system role grants perm.
// Unknown users have no role and no permissions.
func (s *PermissionService) HasSystemPermission(ctx context.Context, userID string, perm domain.Permission) (bool, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.SystemRole.HasPermission(perm), nil
}

// HasTeamPermission reports whether the user may do perm within the team.
// Checks run in precedence order and stop at the first verdict:
//
//  1. a system role carrying admin:manage_teams grants everything in any team
//  2. no membership row denies
//  3. otherwise the team role's grant set decides
func (s *PermissionService) HasTeamPermission(ctx context.Context, userID, teamID string, perm domain.Permission) (bool, error) {
	override, err := s.HasSystemPermission(ctx, userID, domain.PermAdminManageTeams)
	if err != nil {
		return false, err
	}
	if override {
		return true, nil
	}

	m, err := s.Store.Members().GetMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.Role.HasPermission(perm), nil
}

// CanAccessResource decides whether the user may do perm to one concrete
// resource. Ownership is the strongest signal: an owner is never blocked by
// role checks on their own resource. Team resources defer to the team role,
// everything else to the system role. The order is load-bearing; moving the
// team check first would let a team admin override a privately owned
// resource.
func (s *PermissionService) CanAccessResource(ctx context.Context, userID, resourceType, resourceID string, perm domain.Permission) (bool, error) {
	res, err := s.Store.Resources().GetResourceByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if res.Type != resourceType {
		return false, nil
	}

	if res.OwnerID == userID {
		return true, nil
	}
	if res.TeamID != nil {
		return s.HasTeamPermission(ctx, userID, *res.TeamID, perm)
	}
	return s.HasSystemPermission(ctx, userID, perm)
}

// Summary assembles the whole permission picture for one user: the system
// grant list plus a block per team membership.
func (s *PermissionService) Summary(ctx context.Context, userID string) (domain.PermissionsSummary, error) {
	sum := domain.PermissionsSummary{
		UserID:            userID,
		SystemPermissions: []string{},
		TeamPermissions:   []domain.TeamPermissions{},
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return sum, nil
		}
		return domain.PermissionsSummary{}, err
	}
	sum.SystemPermissions = domain.PermissionStrings(u.SystemRole.Permissions())

	teams, err := s.Store.Teams().ListTeamsForUser(ctx, userID)
	if err != nil {
		return domain.PermissionsSummary{}, err
	}
	for _, t := range teams {
		role := domain.ParseTeamRole(t.Role)
		sum.TeamPermissions = append(sum.TeamPermissions, domain.TeamPermissions{
			TeamID:      t.ID,
			TeamName:    t.Name,
			Role:        role.String(),
			Permissions: domain.PermissionStrings(role.Permissions()),
		})
	}
	return sum, nil
}
