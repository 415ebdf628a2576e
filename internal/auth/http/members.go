package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/pkg/authsdk"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
)

// MembersHandler serves the /v1/teams/{id}/members routes and leave.
type MembersHandler struct {
	TeamService  *service.TeamService
	AuditService *service.AuditService
}

// HandleList godoc
//
//	@Summary		List Team Members
//	@Description	Lists a team's members with their account details, ordered by role seniority then name. Any member may look.
//	@Tags			Teams
//	@Produce		json
//	@Param			id	path		string					true	"Team ID"
//	@Success		200	{array}		authsdk.TeamMemberInfo	"Members of the team"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"Not a member of this team"
//	@Security		BearerAuth
//	@Router			/v1/teams/{id}/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	members, err := h.TeamService.ListMembers(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, memberInfos(members))
}

// HandleAdd godoc
//
//	@Summary		Add Team Member
//	@Description	Adds an existing account to the team by email. Owners and admins only; a requested owner role is quietly downgraded to admin since ownership never moves through this endpoint.
//	@Tags			Teams
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Team ID"
//	@Param			request	body		authsdk.AddMemberRequest	true	"Email and role"
//	@Success		201		{object}	authsdk.TeamMemberInfo	"The new membership"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Invalid role or already a member"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Not an owner or admin"
//	@Failure		404		{object}	authsdk.ErrorResponse	"No account with that email"
//	@Security		BearerAuth
//	@Router			/v1/teams/{id}/members [post].
func (h *MembersHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)
	teamID := r.PathValue("id")

	var req authsdk.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
		return
	}

	role := domain.TeamRole(req.Role)
	if !role.Valid() {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Invalid role")
		return
	}

	member, err := h.TeamService.AddMember(ctx, userID, teamID, req.Email, role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	recordAudit(r, h.AuditService, domain.AuditEntry{
		UserID:       userID,
		TeamID:       teamID,
		Action:       domain.AuditMemberAdd,
		ResourceType: "user",
		ResourceID:   member.UserID,
		Details:      auditDetails(map[string]string{"role": member.Role}),
	})

	httpx.WriteJSON(w, http.StatusCreated, memberInfo(member))
}

// HandleUpdateRole godoc
//
//	@Summary		Change Member Role
//	@Description	Changes a member's team role. Owner only; the owner row itself cannot be changed, and owner cannot be assigned.
//	@Tags			Teams
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Team ID"
//	@Param			uid		path		string							true	"Member's user ID"
//	@Param			request	body		authsdk.UpdateMemberRoleRequest	true	"New role"
//	@Success		200		{object}	authsdk.SuccessResponse			"success, message"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Invalid role or owner row targeted"
//	@Failure		401		{object}	authsdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.ErrorResponse			"Not the team owner"
//	@Failure		404		{object}	authsdk.ErrorResponse			"Member not found"
//	@Security		BearerAuth
//	@Router			/v1/teams/{id}/members/{uid} [patch].
func (h *MembersHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)
	teamID := r.PathValue("id")
	targetID := r.PathValue("uid")

	var req authsdk.UpdateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
		return
	}

	role := domain.TeamRole(req.Role)
	if !role.Valid() {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Invalid role")
		return
	}

	if err := h.TeamService.UpdateMemberRole(ctx, userID, teamID, targetID, role); err != nil {
		writeServiceError(w, r, err)
		return
	}

	recordAudit(r, h.AuditService, domain.AuditEntry{
		UserID:       userID,
		TeamID:       teamID,
		Action:       domain.AuditMemberRoleChange,
		ResourceType: "user",
		ResourceID:   targetID,
		Details:      auditDetails(map[string]string{"role": role.String()}),
	})

	httpx.WriteJSON(w, http.StatusOK, authsdk.SuccessResponse{
		Success: true,
		Message: "Member role updated",
	})
}

// HandleRemove godoc
//
//	@Summary		Remove Team Member
//	@Description	Removes a member from the team. Owners and admins only; the owner cannot be removed.
//	@Tags			Teams
//	@Produce		json
//	@Param			id	path		string					true	"Team ID"
//	@Param			uid	path		string					true	"Member's user ID"
//	@Success		200	{object}	authsdk.SuccessResponse	"success, message"
//	@Failure		400	{object}	authsdk.ErrorResponse	"Owner row targeted"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"Not an owner or admin"
//	@Failure		404	{object}	authsdk.ErrorResponse	"Member not found"
//	@Security		BearerAuth
//	@Router			/v1/teams/{id}/members/{uid} [delete].
func (h *MembersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)
	teamID := r.PathValue("id")
	targetID := r.PathValue("uid")

	if err := h.TeamService.RemoveMember(ctx, userID, teamID, targetID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	recordAudit(r, h.AuditService, domain.AuditEntry{
		UserID:       userID,
		TeamID:       teamID,
		Action:       domain.AuditMemberRemove,
		ResourceType: "user",
		ResourceID:   targetID,
	})

	httpx.WriteJSON(w, http.StatusOK, authsdk.SuccessResponse{
		Success: true,
		Message: "Member removed from team",
	})
}

// HandleLeave godoc
//
//	@Summary		Leave Team
//	@Description	Removes the caller's own membership. The owner cannot leave; they must transfer ownership or delete the team.
//	@Tags			Teams
//	@Produce		json
//	@Param			id	path		string					true	"Team ID"
//	@Success		200	{object}	authsdk.SuccessResponse	"success, message"
//	@Failure		400	{object}	authsdk.ErrorResponse	"The caller owns this team"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"Not a member of this team"
//	@Security		BearerAuth
//	@Router			/v1/teams/{id}/leave [post].
func (h *MembersHandler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)
	teamID := r.PathValue("id")

	if err := h.TeamService.Leave(ctx, userID, teamID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	recordAudit(r, h.AuditService, domain.AuditEntry{
		UserID:       userID,
		TeamID:       teamID,
		Action:       domain.AuditMemberRemove,
		ResourceType: "user",
		ResourceID:   userID,
	})

	httpx.WriteJSON(w, http.StatusOK, authsdk.SuccessResponse{
		Success: true,
		Message: "Left team successfully",
	})
}
