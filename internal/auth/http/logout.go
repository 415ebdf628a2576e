package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/pkg/authsdk"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
	"github.com/aussiebroadwan/pilotba/pkg/jwtx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

// LogoutHandler serves POST /v1/auth/logout.
type LogoutHandler struct {
	TokenService *service.TokenService
	AuditService *service.AuditService

	// Verifier attributes the audit entry when the request carries a bearer
	// token. Logout itself never requires one.
	Verifier jwtx.Verifier
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Revokes the supplied refresh token. Always returns 200 whether or not the token was live, unknown or absent, so the endpoint cannot be used to probe token state.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LogoutRequest	true	"Refresh token to revoke (optional)"
//	@Success		200		{object}	authsdk.SuccessResponse	"success, message"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		503		{object}	authsdk.ErrorResponse	"Revocation store unavailable, retry"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Body is optional; a missing or malformed one means nothing to revoke.
	var req authsdk.LogoutRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.TokenService.Logout(ctx, req.RefreshToken); err != nil {
		// The revocation write failed, so the token is still live. This is
		// the one logout outcome that must not be reported as success.
		slogx.FromContext(ctx).Error("logout revocation write failed", "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "store_unavailable",
			"Service temporarily unavailable. Please retry.")
		return
	}

	// Attribution only: a bearer token names who logged out, but its absence
	// never blocks the request.
	var userID string
	if claims, err := httpx.Authenticate(r, h.Verifier); err == nil {
		userID = claims.Subject
	}
	recordAudit(r, h.AuditService, domain.AuditEntry{
		UserID: userID,
		Action: domain.AuditUserLogout,
	})

	httpx.WriteJSON(w, http.StatusOK, authsdk.SuccessResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}
