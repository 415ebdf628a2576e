package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
	"github.com/aussiebroadwan/pilotba/pkg/jwtx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"

	_ "github.com/aussiebroadwan/pilotba/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	TokenService      *service.TokenService
	UserService       *service.UserService
	TeamService       *service.TeamService
	PermissionService *service.PermissionService
	AuditService      *service.AuditService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerTeams()
	r.registerAudit()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			PilotBA Auth Service API
//	@version		0.1.0
//	@description	Authentication and authorization service for the PilotBA analytics platform: bearer token issue, refresh and revocation, team membership, and the permission model behind every gated route.
//	@description
//	@description				Access and refresh tokens are HS256 JWTs signed with purpose-bound keys derived from a single service secret. Rejections are uniform: any invalid credential answers with the same 401 body.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/pilotba
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// systemPermissionChecker adapts the permission service for the authz
// middleware, which speaks plain strings.
func (r *Router) systemPermissionChecker() httpx.PermissionChecker {
	return func(ctx context.Context, userID, permission string) (bool, error) {
		return r.PermissionService.HasSystemPermission(ctx, userID, domain.Permission(permission))
	}
}

func (r *Router) registerAuth() {
	metrics := httpx.MetricsMiddleware()

	registerHandler := &RegisterHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
		AuditService: r.AuditService,
	}
	loginHandler := &LoginHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
		AuditService: r.AuditService,
	}
	refreshHandler := &RefreshHandler{
		TokenService: r.TokenService,
		AuditService: r.AuditService,
	}
	logoutHandler := &LogoutHandler{
		TokenService: r.TokenService,
		AuditService: r.AuditService,
		Verifier:     r.verifier,
	}

	// POST /register - strict rate limit by IP (account creation)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			metrics,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit keyed on IP + email body field, so one
	// address cannot hammer many accounts nor one account from many tries
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			metrics,
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// POST /refresh - strict rate limit by IP (token grinding)
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(refreshHandler,
			metrics,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - moderate rate limit by IP
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			metrics,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	metrics := httpx.MetricsMiddleware()

	meHandler := &MeHandler{UserService: r.UserService}
	permissionsHandler := &PermissionsHandler{PermissionService: r.PermissionService}

	// Authenticated read endpoints - lenient rate limit by user
	r.Mux.Handle("GET /v1/me",
		httpx.Chain(meHandler,
			metrics,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/me/permissions",
		httpx.Chain(permissionsHandler,
			metrics,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerTeams() {
	metrics := httpx.MetricsMiddleware()
	authn := httpx.AuthnMiddleware(r.verifier)

	teamsHandler := &TeamsHandler{
		TeamService:  r.TeamService,
		AuditService: r.AuditService,
	}
	membersHandler := &MembersHandler{
		TeamService:  r.TeamService,
		AuditService: r.AuditService,
	}

	// Reads - lenient rate limit by user
	r.Mux.Handle("GET /v1/teams",
		httpx.Chain(http.HandlerFunc(teamsHandler.HandleList),
			metrics, authn, httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/teams/{id}",
		httpx.Chain(http.HandlerFunc(teamsHandler.HandleGet),
			metrics, authn, httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/teams/{id}/members",
		httpx.Chain(http.HandlerFunc(membersHandler.HandleList),
			metrics, authn, httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Writes - moderate rate limit by user
	r.Mux.Handle("POST /v1/teams",
		httpx.Chain(http.HandlerFunc(teamsHandler.HandleCreate),
			metrics, authn, httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/teams/{id}",
		httpx.Chain(http.HandlerFunc(teamsHandler.HandleUpdate),
			metrics, authn, httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/teams/{id}",
		httpx.Chain(http.HandlerFunc(teamsHandler.HandleDelete),
			metrics, authn, httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/teams/{id}/members",
		httpx.Chain(http.HandlerFunc(membersHandler.HandleAdd),
			metrics, authn, httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/teams/{id}/members/{uid}",
		httpx.Chain(http.HandlerFunc(membersHandler.HandleUpdateRole),
			metrics, authn, httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/teams/{id}/members/{uid}",
		httpx.Chain(http.HandlerFunc(membersHandler.HandleRemove),
			metrics, authn, httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/teams/{id}/leave",
		httpx.Chain(http.HandlerFunc(membersHandler.HandleLeave),
			metrics, authn, httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAudit() {
	metrics := httpx.MetricsMiddleware()
	authn := httpx.AuthnMiddleware(r.verifier)

	h := &AuditHandler{
		AuditService:      r.AuditService,
		PermissionService: r.PermissionService,
	}

	// GET /me/audit - your own trail, token is permission enough
	r.Mux.Handle("GET /v1/me/audit",
		httpx.Chain(http.HandlerFunc(h.HandleMine),
			metrics, authn, httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /teams/{id}/audit - team permission is checked in the handler
	// because it depends on the path's team ID
	r.Mux.Handle("GET /v1/teams/{id}/audit",
		httpx.Chain(http.HandlerFunc(h.HandleTeam),
			metrics, authn, httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /admin/audit - superadmin only, gated in the chain
	r.Mux.Handle("GET /v1/admin/audit",
		httpx.Chain(http.HandlerFunc(h.HandleAdmin),
			metrics, authn,
			httpx.RequirePermission(domain.PermAdminViewAllAuditLogs.String(), r.systemPermissionChecker()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	metrics := httpx.MetricsMiddleware()

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			metrics,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			metrics,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /metrics - Prometheus scrape endpoint, deliberately unmetered by
	// its own middleware
	r.Mux.Handle("GET /metrics",
		httpx.Chain(httpx.MetricsHandler(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
