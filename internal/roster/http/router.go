package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/aussiebroadwan/roster/api/roster" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       httpx.RateLimitProfiles
	lookups      *httpx.Coalescer

	store       store.Store
	Identities  service.IdentityProvider
	Memberships *service.MembershipService
	Invitations *service.InvitationService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	limits httpx.RateLimitProfiles,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		limits:       limits.Normalize(),
		lookups:      httpx.NewCoalescer(),
	}

	// Outermost first: recover, open the server span, then log with its trace id.
	r.middlewares = []httpx.Middleware{
		httpx.Recover(),
		otelhttp.NewMiddleware("roster"),
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every route and freezes the middleware chain. It
// must be called before the router serves requests.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerOrganizations()
	r.registerInvitations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Roster Membership Service API
//	@version		0.1.0
//	@description	Organization membership and invitation lifecycle service.
//	@description
//	@description				Session tokens are EdDSA-signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/roster
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
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// secured wraps h with authentication and a per-identity rate limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByPrincipal(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Identities: r.Identities}

	// Credential endpoints: strict, keyed by IP and the submitted email
	r.Mux.Handle("POST /v1/auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIPAndJSONField(r.limits.Strict, "email"),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.limits.Strict, "email"),
		),
	)
}

func (r *Router) registerOrganizations() {
	h := &OrganizationsHandler{Memberships: r.Memberships}

	r.Mux.Handle("POST /v1/organizations", r.secured(h.HandleCreate, r.limits.Moderate))
	r.Mux.Handle("GET /v1/organizations", r.secured(h.HandleListMine, r.limits.Lenient))
	r.Mux.Handle("GET /v1/organizations/{org}/members", r.secured(h.HandleListMembers, r.limits.Lenient))
	r.Mux.Handle("PATCH /v1/organizations/{org}/members/{member}", r.secured(h.HandleUpdateMember, r.limits.Moderate))
	r.Mux.Handle("DELETE /v1/organizations/{org}/members/{member}", r.secured(h.HandleRemoveMember, r.limits.Moderate))
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{
		Invitations: r.Invitations,
		Lookups:     r.lookups,
	}

	// Management: moderate by identity
	r.Mux.Handle("POST /v1/organizations/{org}/invitations", r.secured(h.HandleCreate, r.limits.Moderate))
	r.Mux.Handle("GET /v1/organizations/{org}/invitations", r.secured(h.HandleList, r.limits.Lenient))
	r.Mux.Handle("POST /v1/invitations/{id}/resend", r.secured(h.HandleResend, r.limits.Moderate))
	r.Mux.Handle("DELETE /v1/invitations/{id}", r.secured(h.HandleDelete, r.limits.Moderate))
	r.Mux.Handle("POST /v1/invitations/accept", r.secured(h.HandleAccept, r.limits.Moderate))

	// Public token endpoints: by IP. Lookup is read-only and coalesced.
	r.Mux.Handle("GET /v1/invitations/lookup",
		httpx.Chain(http.HandlerFunc(h.HandleLookup),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("POST /v1/invitations/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
}
