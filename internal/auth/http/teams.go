package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/pkg/authsdk"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
)

// TeamsHandler serves the /v1/teams CRUD routes. Membership checks live in
// the service; the handler's job is shapes, statuses and the audit trail.
type TeamsHandler struct {
	TeamService  *service.TeamService
	AuditService *service.AuditService
}

// HandleCreate godoc
//
//	@Summary		Create Team
//	@Description	Creates a team and makes the caller its owner in the same transaction. The URL slug is derived from the name and never changes afterwards.
//	@Tags			Teams
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.CreateTeamRequest	true	"Team details"
//	@Success		201		{object}	authsdk.TeamInfo			"id, name, slug, description, role, member_count"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Invalid name or name already taken"
//	@Failure		401		{object}	authsdk.ErrorResponse		"Invalid or missing access token"
//	@Security		BearerAuth
//	@Router			/v1/teams [post].
func (h *TeamsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var req authsdk.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
		return
	}

	team, err := h.TeamService.CreateTeam(ctx, userID, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	recordAudit(r, h.AuditService, domain.AuditEntry{
		UserID:  userID,
		TeamID:  team.ID,
		Action:  domain.AuditTeamCreate,
		Details: auditDetails(map[string]string{"name": team.Name}),
	})

	httpx.WriteJSON(w, http.StatusCreated, teamInfo(team))
}

// HandleList godoc
//
//	@Summary		List Teams
//	@Description	Lists every team the caller belongs to, with their role in each and the member count, ordered by name.
//	@Tags			Teams
//	@Produce		json
//	@Success		200	{array}		authsdk.TeamInfo		"Teams the caller is a member of"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Security		BearerAuth
//	@Router			/v1/teams [get].
func (h *TeamsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	teams, err := h.TeamService.ListTeams(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, teamInfos(teams))
}

// HandleGet godoc
//
//	@Summary		Get Team
//	@Description	Returns one team's details as seen by the caller. Non-members get the same response as for a team that does not exist.
//	@Tags			Teams
//	@Produce		json
//	@Param			id	path		string					true	"Team ID"
//	@Success		200	{object}	authsdk.TeamInfo		"id, name, slug, description, role, member_count"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"Not a member of this team"
//	@Security		BearerAuth
//	@Router			/v1/teams/{id} [get].
func (h *TeamsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	team, err := h.TeamService.GetTeam(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, teamInfo(team))
}

// HandleUpdate godoc
//
//	@Summary		Update Team
//	@Description	Partially updates a team: only the fields present in the body change, and the slug never does. Owners and admins only.
//	@Tags			Teams
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Team ID"
//	@Param			request	body		authsdk.UpdateTeamRequest	true	"Fields to change"
//	@Success		200		{object}	authsdk.TeamInfo			"Updated team"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Empty patch or invalid name"
//	@Failure		401		{object}	authsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.ErrorResponse		"Not an owner or admin"
//	@Security		BearerAuth
//	@Router			/v1/teams/{id} [patch].
func (h *TeamsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)
	teamID := r.PathValue("id")

	var req authsdk.UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
		return
	}

	team, err := h.TeamService.UpdateTeam(ctx, userID, teamID, domain.TeamPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	recordAudit(r, h.AuditService, domain.AuditEntry{
		UserID: userID,
		TeamID: teamID,
		Action: domain.AuditTeamUpdate,
	})

	httpx.WriteJSON(w, http.StatusOK, teamInfo(team))
}

// HandleDelete godoc
//
//	@Summary		Delete Team
//	@Description	Deletes a team and all its memberships. Owner only.
//	@Tags			Teams
//	@Produce		json
//	@Param			id	path		string					true	"Team ID"
//	@Success		200	{object}	authsdk.SuccessResponse	"success, message"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"Not the team owner"
//	@Security		BearerAuth
//	@Router			/v1/teams/{id} [delete].
func (h *TeamsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)
	teamID := r.PathValue("id")

	if err := h.TeamService.DeleteTeam(ctx, userID, teamID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	recordAudit(r, h.AuditService, domain.AuditEntry{
		UserID: userID,
		TeamID: teamID,
		Action: domain.AuditTeamDelete,
	})

	httpx.WriteJSON(w, http.StatusOK, authsdk.SuccessResponse{
		Success: true,
		Message: "Team deleted successfully",
	})
}
