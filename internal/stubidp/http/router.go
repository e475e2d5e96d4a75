package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lanternsec/fusionkit/internal/stubidp/service"
	"github.com/lanternsec/fusionkit/internal/stubidp/store"
	"github.com/lanternsec/fusionkit/pkg/httpx"
	"github.com/lanternsec/fusionkit/pkg/slogx"

	_ "github.com/lanternsec/fusionkit/api/stubidp" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
//
// Routes are registered with method patterns, so a request that hits a known
// path with the wrong method gets the mux's native 405. That is the
// provider's documented answer to, say, a POST against the validate endpoint,
// and conforming clients depend on it to detect their own miswiring.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	apiKey        string
	tenantID      string
	applicationID string
	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger

	store store.Store

	RegistrationService *service.RegistrationService
	LoginService        *service.LoginService
	TokenService        *service.TokenService
}

func NewRouter(
	apiKey, tenantID, applicationID, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		apiKey:        apiKey,
		tenantID:      tenantID,
		applicationID: applicationID,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerIdentity()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			FusionKit Stub Identity Provider API
//	@version		0.1.0
//	@description	A FusionAuth-compatible identity provider implementing the wrapped surface: user registration, login, token validation and token refresh.
//	@description
//	@description				Every /api request must carry the tenant header (X-FusionAuth-TenantId) and the API-key header (X-Api-Key). Token validation additionally carries the access token as a bearer credential and accepts GET only.
//
//	@contact.name				LanternSec Engineering
//	@contact.url				https://github.com/lanternsec/fusionkit
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:9011
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	APIKeyAuth
//	@in							header
//	@name						X-Api-Key
//	@description				Application-scoped API key identifying the calling application.
//
//	@securityDefinitions.apikey	TenantHeader
//	@in							header
//	@name						X-FusionAuth-TenantId
//	@description				Tenant identifier; required on every request even for the default tenant.
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token for validation. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerIdentity() {
	guard := r.requireProviderHeaders()

	// POST /api/user/registration - strict rate limit (account creation)
	regHandler := &RegistrationHandler{
		RegistrationService: r.RegistrationService,
		ApplicationID:       r.applicationID,
	}
	r.Mux.Handle("POST /api/user/registration",
		httpx.Chain(regHandler,
			guard,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/login - strict rate limit (credential guessing)
	loginHandler := &LoginHandler{
		LoginService:  r.LoginService,
		ApplicationID: r.applicationID,
	}
	r.Mux.Handle("POST /api/login",
		httpx.Chain(loginHandler,
			guard,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /api/jwt/validate - public limit; resource servers call this on
	// every request they authenticate. The GET-only pattern is deliberate:
	// anything else must answer 405.
	validateHandler := &ValidateHandler{TokenService: r.TokenService}
	r.Mux.Handle("GET /api/jwt/validate",
		httpx.Chain(validateHandler,
			guard,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// POST /api/jwt/refresh - moderate rate limit
	refreshHandler := &RefreshHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /api/jwt/refresh",
		httpx.Chain(refreshHandler,
			guard,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
