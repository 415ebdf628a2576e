package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/pilotba/pkg/jwtx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

// ErrMissingBearer reports a request with no usable Authorization header.
var ErrMissingBearer = errors.New("httpx: missing bearer token")

// Authenticate extracts and verifies the bearer token on r without touching
// the response. It is the testable half of AuthnMiddleware: header parsing
// and signature/expiry checks happen here, HTTP enforcement happens in the
// middleware.
func Authenticate(r *http.Request, v jwtx.Verifier) (jwtx.Claims, error) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return jwtx.Claims{}, ErrMissingBearer
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	if raw == "" {
		return jwtx.Claims{}, ErrMissingBearer
	}

	claims, err := v.Verify(raw)
	if err != nil {
		return jwtx.Claims{}, err
	}

	if err := claims.ValidateExpiry(); err != nil {
		return jwtx.Claims{}, err
	}

	return claims, nil
}

// AuthnMiddleware hard-gates a route behind bearer authentication. Every
// failure mode produces the same 401 response so callers cannot probe which
// check rejected them; the specific reason is only logged server side.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims, err := Authenticate(r, v)
			if err != nil {
				if !errors.Is(err, ErrMissingBearer) {
					slogx.FromContext(ctx).Warn("jwt verify failed", "err", err)
				}
				WriteUnauthorized(w)
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
