package httpx

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

// PermissionChecker reports whether the given user holds a permission. An
// error means the answer could not be determined (backing store down), which
// is distinct from a clean deny.
type PermissionChecker func(ctx context.Context, userID, permission string) (bool, error)

// RequirePermission gates a route on a system permission. It must sit inside
// AuthnMiddleware in the chain; an unauthenticated request is rejected with
// the same uniform 401 as the gate itself.
func RequirePermission(permission string, check PermissionChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID := UserIDFromContext(ctx)
			if userID == "" {
				WriteUnauthorized(w)
				return
			}

			ok, err := check(ctx, userID, permission)
			if err != nil {
				slogx.FromContext(ctx).Error("permission check failed",
					"user_id", userID,
					"permission", permission,
					"err", err,
				)
				WriteError(w, http.StatusServiceUnavailable, "store_unavailable",
					"permission check temporarily unavailable")
				return
			}
			if !ok {
				WriteError(w, http.StatusForbidden, "forbidden", "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
