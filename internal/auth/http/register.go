package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/pkg/authsdk"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

// RegisterHandler serves POST /v1/auth/register.
type RegisterHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
	AuditService *service.AuditService
}

// ServeHTTP godoc
//
//	@Summary		Register Account
//	@Description	Creates an account with the default system role and returns a token pair, so registration doubles as the first login.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	authsdk.TokenResponse	"access_token, refresh_token, token_type, expires_in, user"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Validation failure or duplicate email"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
		return
	}

	u, err := h.UserService.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pair, err := h.TokenService.IssuePair(u)
	if err != nil {
		log.Error("token mint failed after registration", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error",
			"Internal server error")
		return
	}

	recordAudit(r, h.AuditService, domain.AuditEntry{
		UserID: u.ID,
		Action: domain.AuditUserRegister,
	})

	httpx.WriteJSON(w, http.StatusCreated, tokenResponse(pair))
}
