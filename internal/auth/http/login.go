package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/pkg/authsdk"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

// LoginHandler serves POST /v1/auth/login.
type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
	AuditService *service.AuditService
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Exchanges email and password for an access/refresh token pair.
//	@Description	Wrong password and unknown email produce the same 401; neither the body nor response timing says which factor failed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.TokenResponse	"access_token, refresh_token, token_type, expires_in, user"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Missing or malformed fields"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request",
			"Email and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "Invalid email format")
		return
	}

	u, err := h.UserService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pair, err := h.TokenService.IssuePair(u)
	if err != nil {
		log.Error("token mint failed after login", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error",
			"Internal server error")
		return
	}

	recordAudit(r, h.AuditService, domain.AuditEntry{
		UserID: u.ID,
		Action: domain.AuditUserLogin,
	})

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}
