package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

// recordAudit fills in the request-derived fields and hands the entry off.
// Only this layer sees the client address and user agent, so recording
// happens here rather than in the services.
func recordAudit(r *http.Request, svc *service.AuditService, e domain.AuditEntry) {
	e.IPAddress = httpx.IPKeyExtractor(r)
	e.UserAgent = r.UserAgent()
	svc.Record(r.Context(), e)
}

// auditDetails renders a small key/value set as the opaque JSON kept in the
// audit details column.
func auditDetails(kv map[string]string) string {
	b, err := json.Marshal(kv)
	if err != nil {
		return ""
	}
	return string(b)
}

// auditPage reads limit and offset from the query string. Missing or
// malformed values come back as zero and the service applies its defaults.
func auditPage(r *http.Request) (limit, offset int64) {
	q := r.URL.Query()
	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	offset, _ = strconv.ParseInt(q.Get("offset"), 10, 64)
	return limit, offset
}

// AuditHandler serves the audit trail reads. Each route answers a different
// question of scope: my own actions, everything inside one team, or the
// whole platform.
type AuditHandler struct {
	AuditService      *service.AuditService
	PermissionService *service.PermissionService
}

// HandleMine godoc
//
//	@Summary		My Audit Trail
//	@Description	Returns the caller's own recorded actions, newest first. No permission beyond a valid token; your own trail is yours to read.
//	@Tags			Audit
//	@Produce		json
//	@Param			limit	query		int						false	"Page size (default 50, max 200)"
//	@Param			offset	query		int						false	"Rows to skip"
//	@Success		200		{array}		authsdk.AuditEntry		"Audit entries"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Security		BearerAuth
//	@Router			/v1/me/audit [get].
func (h *AuditHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, offset := auditPage(r)
	entries, err := h.AuditService.ListForUser(ctx, httpx.UserIDFromContext(ctx), limit, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, auditEntries(entries))
}

// HandleTeam godoc
//
//	@Summary		Team Audit Trail
//	@Description	Returns a team's recorded actions, newest first. Requires the team's view_audit_log permission, which only the owner holds; platform admins may read any team's trail.
//	@Tags			Audit
//	@Produce		json
//	@Param			id		path		string					true	"Team ID"
//	@Param			limit	query		int						false	"Page size (default 50, max 200)"
//	@Param			offset	query		int						false	"Rows to skip"
//	@Success		200		{array}		authsdk.AuditEntry		"Audit entries"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Caller may not view this team's log"
//	@Security		BearerAuth
//	@Router			/v1/teams/{id}/audit [get].
func (h *AuditHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)
	teamID := r.PathValue("id")

	ok, err := h.PermissionService.HasTeamPermission(ctx, userID, teamID, domain.PermTeamViewAuditLog)
	if err != nil {
		slogx.FromContext(ctx).Error("permission check failed",
			"user_id", userID,
			"team_id", teamID,
			"err", err,
		)
		httpx.WriteError(w, http.StatusServiceUnavailable, "store_unavailable",
			"permission check temporarily unavailable")
		return
	}
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "insufficient permissions")
		return
	}

	limit, offset := auditPage(r)
	entries, err := h.AuditService.ListForTeam(ctx, teamID, limit, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, auditEntries(entries))
}

// HandleAdmin godoc
//
//	@Summary		Platform Audit Trail
//	@Description	Returns every recorded action on the platform, newest first. The admin:view_all_audit_logs gate is applied in the route chain.
//	@Tags			Audit
//	@Produce		json
//	@Param			limit	query		int						false	"Page size (default 50, max 200)"
//	@Param			offset	query		int						false	"Rows to skip"
//	@Success		200		{array}		authsdk.AuditEntry		"Audit entries"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Caller is not a superadmin"
//	@Security		BearerAuth
//	@Router			/v1/admin/audit [get].
func (h *AuditHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, offset := auditPage(r)
	entries, err := h.AuditService.ListAll(ctx, limit, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, auditEntries(entries))
}
