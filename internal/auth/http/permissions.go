package http

import (
	"net/http"

	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

// PermissionsHandler serves GET /v1/me/permissions.
type PermissionsHandler struct {
	PermissionService *service.PermissionService
}

// ServeHTTP godoc
//
//	@Summary		Permission Summary
//	@Description	Returns everything the caller may do: the permission set of their system role plus, for each team they belong to, the permission set of their team role.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	authsdk.PermissionsResponse	"user_id, system_permissions, team_permissions"
//	@Failure		401	{object}	authsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		500	{object}	authsdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/me/permissions [get].
func (h *PermissionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteUnauthorized(w)
		return
	}

	summary, err := h.PermissionService.Summary(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("permission summary failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error",
			"Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, permissionsResponse(summary))
}
