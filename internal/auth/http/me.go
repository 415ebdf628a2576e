package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

// MeHandler serves GET /v1/me.
type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Current User
//	@Description	Returns the authenticated user's profile. The profile is read fresh from the store, so role changes show up here before the token is reissued.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	authsdk.UserInfo		"id, email, name, role"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteUnauthorized(w)
		return
	}

	u, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The token verified but its subject no longer exists; the
			// account was deleted after issuance.
			log.Warn("token subject no longer exists", "user_id", userID)
			httpx.WriteUnauthorized(w)
			return
		}
		log.Error("profile lookup failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error",
			"Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfo(u.Info()))
}
