package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
	"github.com/aussiebroadwan/pilotba/pkg/jwtx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

// writeServiceError maps a service error onto the error contract. The
// taxonomy collapses at this boundary: every credential failure becomes the
// same 401 body, while forbidden/not-found/bad-request keep their specific
// messages since the caller is already a known identity.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var re *service.RequestError
	msg := ""
	if errors.As(err, &re) {
		msg = re.Msg
	}

	switch {
	case errors.Is(err, service.ErrBadRequest):
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", msg)
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", msg)
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", msg)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTokenRevoked),
		jwtx.IsValidationError(err):
		httpx.WriteUnauthorized(w)
	case errors.Is(err, service.ErrStoreUnavailable):
		httpx.WriteError(w, http.StatusServiceUnavailable, "store_unavailable",
			"Service temporarily unavailable. Please retry.")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error",
			"Internal server error")
	}
}
