package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/pilotba/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestTeamLifecycle covers the owner's path: create, read, list, update,
// delete.
func TestTeamLifecycle(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	owner := registerUser(t, client, "owner@pilotba.test", "Owner")
	ctx := t.Context()

	// Create
	team, err := owner.CreateTeam(ctx, "Data Platform", "Analytics infrastructure")
	require.NoError(t, err)
	require.NotEmpty(t, team.ID)
	require.Equal(t, "Data Platform", team.Name)
	require.Equal(t, "data-platform", team.Slug, "Slug should be derived from the name")
	require.Equal(t, "owner", team.Role, "Creator becomes the owner")
	require.EqualValues(t, 1, team.MemberCount)

	// Read
	fetched, err := owner.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, team.ID, fetched.ID)
	require.Equal(t, "Analytics infrastructure", fetched.Description)

	// List
	teams, err := owner.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.Equal(t, team.ID, teams[0].ID)

	// Update
	newName := "Data Platform Core"
	updated, err := owner.UpdateTeam(ctx, team.ID, authsdk.UpdateTeamRequest{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Data Platform Core", updated.Name)
	require.Equal(t, "Analytics infrastructure", updated.Description,
		"Fields missing from the patch stay unchanged")

	// Delete
	require.NoError(t, owner.DeleteTeam(ctx, team.ID))

	teams, err = owner.ListTeams(ctx)
	require.NoError(t, err)
	require.Empty(t, teams, "Deleted team should be gone from the list")
}

// TestTeamDuplicateName verifies two teams cannot share a name.
func TestTeamDuplicateName(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	owner := registerUser(t, client, "dup-owner@pilotba.test", "Owner")

	_, err := owner.CreateTeam(t.Context(), "Reporting", "")
	require.NoError(t, err)

	_, err = owner.CreateTeam(t.Context(), "Reporting", "")
	assertBadRequest(t, err, "Duplicate team name should be rejected")
}

// TestTeamMembership covers the membership flow: invite, roster, role
// change, removal.
func TestTeamMembership(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	owner := registerUser(t, client, "lead@pilotba.test", "Lead")
	registerUser(t, client, "analyst@pilotba.test", "Analyst")

	team, err := owner.CreateTeam(ctx, "Insights", "")
	require.NoError(t, err)

	// Invite by email
	member, err := owner.AddMember(ctx, team.ID, "analyst@pilotba.test", "member")
	require.NoError(t, err)
	require.Equal(t, "analyst@pilotba.test", member.Email)
	require.Equal(t, "member", member.Role)
	require.NotEmpty(t, member.UserID)

	// Roster shows both
	roster, err := owner.ListMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)

	// The invitee now sees the team with their own role
	analyst, err := client.Login(ctx, "analyst@pilotba.test", defaultPassword)
	require.NoError(t, err)

	seen, err := analyst.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, "member", seen.Role)
	require.EqualValues(t, 2, seen.MemberCount)

	// Promote
	require.NoError(t, owner.UpdateMemberRole(ctx, team.ID, member.UserID, "admin"))

	seen, err = analyst.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, "admin", seen.Role)

	// Remove
	require.NoError(t, owner.RemoveMember(ctx, team.ID, member.UserID))

	_, err = analyst.GetTeam(ctx, team.ID)
	assertForbidden(t, err, "Removed member should lose access to the team")
}

// TestTeamMembershipRules verifies the guard rails around membership
// mutations.
func TestTeamMembershipRules(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	owner := registerUser(t, client, "boss@pilotba.test", "Boss")
	registerUser(t, client, "peer@pilotba.test", "Peer")

	team, err := owner.CreateTeam(ctx, "Research", "")
	require.NoError(t, err)

	ownerID := owner.User().ID

	t.Run("inviting an owner coerces to admin", func(t *testing.T) {
		member, err := owner.AddMember(ctx, team.ID, "peer@pilotba.test", "owner")
		require.NoError(t, err)
		require.Equal(t, "admin", member.Role, "Ownership never moves through invites")

		require.NoError(t, owner.RemoveMember(ctx, team.ID, member.UserID))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := owner.AddMember(ctx, team.ID, "stranger@pilotba.test", "member")
		assertNotFound(t, err, "Inviting an unregistered email should 404")
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := owner.AddMember(ctx, team.ID, "peer@pilotba.test", "emperor")
		assertBadRequest(t, err, "Unknown role should be rejected")
	})

	t.Run("duplicate member", func(t *testing.T) {
		_, err := owner.AddMember(ctx, team.ID, "peer@pilotba.test", "member")
		require.NoError(t, err)

		_, err = owner.AddMember(ctx, team.ID, "peer@pilotba.test", "viewer")
		assertBadRequest(t, err, "Double invite should be rejected")
	})

	t.Run("owner role cannot be assigned", func(t *testing.T) {
		peer, err := client.Login(ctx, "peer@pilotba.test", defaultPassword)
		require.NoError(t, err)

		err = owner.UpdateMemberRole(ctx, team.ID, peer.User().ID, "owner")
		assertBadRequest(t, err, "Assigning the owner role should be rejected")
	})

	t.Run("owner cannot be demoted", func(t *testing.T) {
		err := owner.UpdateMemberRole(ctx, team.ID, ownerID, "viewer")
		assertBadRequest(t, err, "Changing the owner's role should be rejected")
	})

	t.Run("owner cannot be removed", func(t *testing.T) {
		err := owner.RemoveMember(ctx, team.ID, ownerID)
		assertBadRequest(t, err, "Removing the owner should be rejected")
	})

	t.Run("owner cannot leave", func(t *testing.T) {
		err := owner.LeaveTeam(ctx, team.ID)
		assertBadRequest(t, err, "The owner leaving would orphan the team")
	})

	t.Run("member can leave", func(t *testing.T) {
		peer, err := client.Login(ctx, "peer@pilotba.test", defaultPassword)
		require.NoError(t, err)

		require.NoError(t, peer.LeaveTeam(ctx, team.ID))

		_, err = peer.GetTeam(ctx, team.ID)
		assertForbidden(t, err, "A departed member should lose access")
	})
}

// TestTeamAccessControl verifies non-members and low-privilege members are
// denied team mutations.
func TestTeamAccessControl(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	owner := registerUser(t, client, "alpha@pilotba.test", "Alpha")
	outsider := registerUser(t, client, "beta@pilotba.test", "Beta")
	registerUser(t, client, "gamma@pilotba.test", "Gamma")

	team, err := owner.CreateTeam(ctx, "Secrets", "")
	require.NoError(t, err)

	t.Run("non-member cannot read the team", func(t *testing.T) {
		_, err := outsider.GetTeam(ctx, team.ID)
		assertForbidden(t, err, "Non-members get a denial, not a peek")
	})

	t.Run("non-member cannot list the roster", func(t *testing.T) {
		_, err := outsider.ListMembers(ctx, team.ID)
		assertForbidden(t, err, "Roster is members-only")
	})

	t.Run("nonexistent team looks like a denial", func(t *testing.T) {
		// An outsider probing a random ID and a real one must see the
		// same answer.
		_, err := outsider.GetTeam(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
		assertForbidden(t, err, "Unknown team should be indistinguishable from denied")
	})

	t.Run("viewer cannot invite or update", func(t *testing.T) {
		_, err := owner.AddMember(ctx, team.ID, "gamma@pilotba.test", "viewer")
		require.NoError(t, err)

		viewer, err := client.Login(ctx, "gamma@pilotba.test", defaultPassword)
		require.NoError(t, err)

		_, err = viewer.AddMember(ctx, team.ID, "beta@pilotba.test", "member")
		assertForbidden(t, err, "Viewers cannot invite")

		name := "Renamed"
		_, err = viewer.UpdateTeam(ctx, team.ID, authsdk.UpdateTeamRequest{Name: &name})
		assertForbidden(t, err, "Viewers cannot change settings")

		err = viewer.DeleteTeam(ctx, team.ID)
		assertForbidden(t, err, "Viewers cannot delete the team")
	})

	t.Run("admin cannot delete the team", func(t *testing.T) {
		member, err := owner.AddMember(ctx, team.ID, "beta@pilotba.test", "admin")
		require.NoError(t, err)
		require.Equal(t, "admin", member.Role)

		err = outsider.DeleteTeam(ctx, team.ID)
		assertForbidden(t, err, "Delete is owner-only")
	})
}
