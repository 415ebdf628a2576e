package service

import (
	"context"
	"strings"
	"testing"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
	"github.com/aussiebroadwan/pilotba/pkg/idx"
	"github.com/stretchr/testify/require"
)

func requireForbidden(t *testing.T, err error, msg string) {
	t.Helper()

	require.ErrorIs(t, err, ErrForbidden)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	require.Equal(t, msg, re.Msg)
}

func requireNotFound(t *testing.T, err error, msg string) {
	t.Helper()

	require.ErrorIs(t, err, ErrNotFound)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	require.Equal(t, msg, re.Msg)
}

func TestGenerateSlug(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"My Team":         "my-team",
		"Project_Alpha":   "project-alpha",
		"Test  Team  123": "test-team-123",
		"Special!@#Chars": "specialchars",
		"  padded  ":      "padded",
		"--dashes--":      "dashes",
		"ALL CAPS":        "all-caps",
		"":                "",
	}
	for in, want := range cases {
		require.Equal(t, want, generateSlug(in), "input %q", in)
	}

	long := strings.Repeat("a", 150)
	require.Len(t, generateSlug(long), 100)
}

func TestCreateTeam(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &TeamService{Store: s}

	creator := seedUser(t, s, "creator@example.com", domain.SystemRoleUser)

	t.Run("creates team with owner membership", func(t *testing.T) {
		info, err := svc.CreateTeam(ctx, creator.ID, "Data Platform", "Shared dashboards")
		require.NoError(t, err)

		require.Equal(t, "Data Platform", info.Name)
		require.Equal(t, "data-platform", info.Slug)
		require.Equal(t, "Shared dashboards", info.Description)
		require.Equal(t, "owner", info.Role)
		require.EqualValues(t, 1, info.MemberCount)

		m, err := s.Members().GetMember(ctx, info.ID, creator.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TeamRoleOwner, m.Role)
	})

	t.Run("rejects a colliding name", func(t *testing.T) {
		_, err := svc.CreateTeam(ctx, creator.ID, "data platform", "")
		requireBadRequest(t, err, "A team with this name already exists")
	})

	t.Run("validates the name", func(t *testing.T) {
		_, err := svc.CreateTeam(ctx, creator.ID, "", "")
		requireBadRequest(t, err, "Team name must be 1-255 characters")

		_, err = svc.CreateTeam(ctx, creator.ID, strings.Repeat("x", 256), "")
		requireBadRequest(t, err, "Team name must be 1-255 characters")
	})
}

func TestGetTeam(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &TeamService{Store: s}

	owner := seedUser(t, s, "owner@example.com", domain.SystemRoleUser)
	member := seedUser(t, s, "member@example.com", domain.SystemRoleUser)
	outsider := seedUser(t, s, "outsider@example.com", domain.SystemRoleUser)

	created, err := svc.CreateTeam(ctx, owner.ID, "Analytics", "")
	require.NoError(t, err)
	addMember(t, s, created.ID, member.ID, domain.TeamRoleViewer)

	t.Run("members see the team with their role", func(t *testing.T) {
		info, err := svc.GetTeam(ctx, member.ID, created.ID)
		require.NoError(t, err)
		require.Equal(t, "viewer", info.Role)
		require.EqualValues(t, 2, info.MemberCount)
	})

	t.Run("non-members are turned away", func(t *testing.T) {
		_, err := svc.GetTeam(ctx, outsider.ID, created.ID)
		requireForbidden(t, err, "You are not a member of this team")
	})

	t.Run("unknown team looks the same as a denied one", func(t *testing.T) {
		_, err := svc.GetTeam(ctx, outsider.ID, idx.New().String())
		requireForbidden(t, err, "You are not a member of this team")
	})
}

func TestListTeams(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &TeamService{Store: s}

	u := seedUser(t, s, "lister@example.com", domain.SystemRoleUser)
	other := seedUser(t, s, "other@example.com", domain.SystemRoleUser)

	_, err := svc.CreateTeam(ctx, u.ID, "Zeta", "")
	require.NoError(t, err)
	_, err = svc.CreateTeam(ctx, u.ID, "Alpha", "")
	require.NoError(t, err)
	_, err = svc.CreateTeam(ctx, other.ID, "Hidden", "")
	require.NoError(t, err)

	teams, err := svc.ListTeams(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	require.Equal(t, "Alpha", teams[0].Name)
	require.Equal(t, "Zeta", teams[1].Name)

	empty, err := svc.ListTeams(ctx, idx.New().String())
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestUpdateTeam(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &TeamService{Store: s}

	owner := seedUser(t, s, "owner@example.com", domain.SystemRoleUser)
	admin := seedUser(t, s, "admin@example.com", domain.SystemRoleUser)
	viewer := seedUser(t, s, "viewer@example.com", domain.SystemRoleUser)
	outsider := seedUser(t, s, "outsider@example.com", domain.SystemRoleUser)

	created, err := svc.CreateTeam(ctx, owner.ID, "Original Name", "Original description")
	require.NoError(t, err)
	addMember(t, s, created.ID, admin.ID, domain.TeamRoleAdmin)
	addMember(t, s, created.ID, viewer.ID, domain.TeamRoleViewer)

	newName := "Renamed"
	newDesc := "Updated description"

	t.Run("owner can rename, slug stays", func(t *testing.T) {
		info, err := svc.UpdateTeam(ctx, owner.ID, created.ID, domain.TeamPatch{Name: &newName})
		require.NoError(t, err)
		require.Equal(t, "Renamed", info.Name)
		require.Equal(t, "original-name", info.Slug)
		require.Equal(t, "Original description", info.Description)
	})

	t.Run("admin can patch just the description", func(t *testing.T) {
		info, err := svc.UpdateTeam(ctx, admin.ID, created.ID, domain.TeamPatch{Description: &newDesc})
		require.NoError(t, err)
		require.Equal(t, "Renamed", info.Name)
		require.Equal(t, "Updated description", info.Description)
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		_, err := svc.UpdateTeam(ctx, owner.ID, created.ID, domain.TeamPatch{})
		requireBadRequest(t, err, "No fields to update")
	})

	t.Run("viewers cannot update", func(t *testing.T) {
		_, err := svc.UpdateTeam(ctx, viewer.ID, created.ID, domain.TeamPatch{Name: &newName})
		requireForbidden(t, err, "Only team owners and admins can update team settings")
	})

	t.Run("outsiders cannot update", func(t *testing.T) {
		_, err := svc.UpdateTeam(ctx, outsider.ID, created.ID, domain.TeamPatch{Name: &newName})
		requireForbidden(t, err, "You are not a member of this team")
	})
}

func TestDeleteTeam(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &TeamService{Store: s}

	owner := seedUser(t, s, "owner@example.com", domain.SystemRoleUser)
	admin := seedUser(t, s, "admin@example.com", domain.SystemRoleUser)

	created, err := svc.CreateTeam(ctx, owner.ID, "Doomed", "")
	require.NoError(t, err)
	addMember(t, s, created.ID, admin.ID, domain.TeamRoleAdmin)

	t.Run("admins cannot delete", func(t *testing.T) {
		err := svc.DeleteTeam(ctx, admin.ID, created.ID)
		requireForbidden(t, err, "Only team owners can delete teams")
	})

	t.Run("owner deletes, memberships cascade", func(t *testing.T) {
		require.NoError(t, svc.DeleteTeam(ctx, owner.ID, created.ID))

		_, err := s.Teams().GetTeamByID(ctx, created.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Members().GetMember(ctx, created.ID, admin.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &TeamService{Store: s}

	owner := seedUser(t, s, "owner@example.com", domain.SystemRoleUser)
	invitee := seedUser(t, s, "invitee@example.com", domain.SystemRoleUser)
	viewer := seedUser(t, s, "viewer@example.com", domain.SystemRoleUser)

	created, err := svc.CreateTeam(ctx, owner.ID, "Inviting", "")
	require.NoError(t, err)
	addMember(t, s, created.ID, viewer.ID, domain.TeamRoleViewer)

	t.Run("owner invites by email", func(t *testing.T) {
		info, err := svc.AddMember(ctx, owner.ID, created.ID, " Invitee@Example.COM ", domain.TeamRoleMember)
		require.NoError(t, err)
		require.Equal(t, invitee.ID, info.UserID)
		require.Equal(t, "invitee@example.com", info.Email)
		require.Equal(t, "member", info.Role)
	})

	t.Run("inviting again is rejected", func(t *testing.T) {
		_, err := svc.AddMember(ctx, owner.ID, created.ID, "invitee@example.com", domain.TeamRoleMember)
		requireBadRequest(t, err, "User is already a member of this team")
	})

	t.Run("owner role is downgraded to admin", func(t *testing.T) {
		second := seedUser(t, s, "second@example.com", domain.SystemRoleUser)

		info, err := svc.AddMember(ctx, owner.ID, created.ID, second.Email, domain.TeamRoleOwner)
		require.NoError(t, err)
		require.Equal(t, "admin", info.Role)
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		_, err := svc.AddMember(ctx, owner.ID, created.ID, "stranger@example.com", domain.TeamRoleMember)
		requireNotFound(t, err, "User not found with that email")
	})

	t.Run("viewers cannot invite", func(t *testing.T) {
		_, err := svc.AddMember(ctx, viewer.ID, created.ID, "invitee@example.com", domain.TeamRoleMember)
		requireForbidden(t, err, "Only team owners and admins can invite members")
	})
}

func TestUpdateMemberRole(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &TeamService{Store: s}

	owner := seedUser(t, s, "owner@example.com", domain.SystemRoleUser)
	admin := seedUser(t, s, "admin@example.com", domain.SystemRoleUser)
	member := seedUser(t, s, "member@example.com", domain.SystemRoleUser)

	created, err := svc.CreateTeam(ctx, owner.ID, "Roles", "")
	require.NoError(t, err)
	addMember(t, s, created.ID, admin.ID, domain.TeamRoleAdmin)
	addMember(t, s, created.ID, member.ID, domain.TeamRoleMember)

	t.Run("owner promotes a member", func(t *testing.T) {
		require.NoError(t, svc.UpdateMemberRole(ctx, owner.ID, created.ID, member.ID, domain.TeamRoleAdmin))

		m, err := s.Members().GetMember(ctx, created.ID, member.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TeamRoleAdmin, m.Role)
	})

	t.Run("admins cannot change roles", func(t *testing.T) {
		err := svc.UpdateMemberRole(ctx, admin.ID, created.ID, member.ID, domain.TeamRoleViewer)
		requireForbidden(t, err, "Only team owners can change member roles")
	})

	t.Run("owner role cannot be assigned", func(t *testing.T) {
		err := svc.UpdateMemberRole(ctx, owner.ID, created.ID, member.ID, domain.TeamRoleOwner)
		requireBadRequest(t, err, "Cannot assign owner role. Transfer ownership instead.")
	})

	t.Run("the owner's own role is immutable", func(t *testing.T) {
		err := svc.UpdateMemberRole(ctx, owner.ID, created.ID, owner.ID, domain.TeamRoleMember)
		requireBadRequest(t, err, "Cannot change owner's role")
	})

	t.Run("unknown member is not found", func(t *testing.T) {
		err := svc.UpdateMemberRole(ctx, owner.ID, created.ID, idx.New().String(), domain.TeamRoleMember)
		requireNotFound(t, err, "Member not found")
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &TeamService{Store: s}

	owner := seedUser(t, s, "owner@example.com", domain.SystemRoleUser)
	admin := seedUser(t, s, "admin@example.com", domain.SystemRoleUser)
	member := seedUser(t, s, "member@example.com", domain.SystemRoleUser)

	created, err := svc.CreateTeam(ctx, owner.ID, "Removals", "")
	require.NoError(t, err)
	addMember(t, s, created.ID, admin.ID, domain.TeamRoleAdmin)
	addMember(t, s, created.ID, member.ID, domain.TeamRoleMember)

	t.Run("members cannot remove anyone", func(t *testing.T) {
		err := svc.RemoveMember(ctx, member.ID, created.ID, admin.ID)
		requireForbidden(t, err, "Only team owners and admins can remove members")
	})

	t.Run("the owner cannot be removed", func(t *testing.T) {
		err := svc.RemoveMember(ctx, admin.ID, created.ID, owner.ID)
		requireBadRequest(t, err, "Cannot remove team owner")
	})

	t.Run("admin removes a member", func(t *testing.T) {
		require.NoError(t, svc.RemoveMember(ctx, admin.ID, created.ID, member.ID))

		_, err := s.Members().GetMember(ctx, created.ID, member.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("removing twice is not found", func(t *testing.T) {
		err := svc.RemoveMember(ctx, admin.ID, created.ID, member.ID)
		requireNotFound(t, err, "Member not found")
	})
}

func TestLeaveTeam(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &TeamService{Store: s}

	owner := seedUser(t, s, "owner@example.com", domain.SystemRoleUser)
	member := seedUser(t, s, "member@example.com", domain.SystemRoleUser)
	outsider := seedUser(t, s, "outsider@example.com", domain.SystemRoleUser)

	created, err := svc.CreateTeam(ctx, owner.ID, "Leavers", "")
	require.NoError(t, err)
	addMember(t, s, created.ID, member.ID, domain.TeamRoleMember)

	t.Run("members can leave", func(t *testing.T) {
		require.NoError(t, svc.Leave(ctx, member.ID, created.ID))

		_, err := s.Members().GetMember(ctx, created.ID, member.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("the owner cannot leave", func(t *testing.T) {
		err := svc.Leave(ctx, owner.ID, created.ID)
		requireBadRequest(t, err, "Team owners cannot leave. Transfer ownership or delete the team.")
	})

	t.Run("non-members cannot leave", func(t *testing.T) {
		err := svc.Leave(ctx, outsider.ID, created.ID)
		requireForbidden(t, err, "You are not a member of this team")
	})
}
