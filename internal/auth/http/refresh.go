package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/pkg/authsdk"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
)

// RefreshHandler serves POST /v1/auth/refresh.
type RefreshHandler struct {
	TokenService *service.TokenService
	AuditService *service.AuditService
}

// ServeHTTP godoc
//
//	@Summary		Refresh Token Pair
//	@Description	Rotates a refresh token: the presented token is revoked and a fresh pair is returned in one operation, so each refresh token works exactly once.
//	@Description	Expired, forged and already-used tokens all produce the same 401. A 503 means the revocation store could not confirm the rotation; retry with the same token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	authsdk.TokenResponse	"access_token, refresh_token, token_type, expires_in, user"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Missing refresh_token"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid, expired or revoked token"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		503		{object}	authsdk.ErrorResponse	"Revocation store unavailable, retry"
//	@Router			/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
		return
	}
	if req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Refresh token is required")
		return
	}

	pair, err := h.TokenService.Rotate(ctx, req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	recordAudit(r, h.AuditService, domain.AuditEntry{
		UserID: pair.User.ID,
		Action: domain.AuditTokenRefresh,
	})

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}
