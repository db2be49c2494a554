package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/heymumma/heymumma/api/heymumma" // Swagger docs
	"github.com/heymumma/heymumma/internal/account/metrics"
	"github.com/heymumma/heymumma/internal/account/service"
	"github.com/heymumma/heymumma/internal/account/store"
	"github.com/heymumma/heymumma/internal/predict"
	"github.com/heymumma/heymumma/pkg/httpx"
	"github.com/heymumma/heymumma/pkg/jwtx"
	"github.com/heymumma/heymumma/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     httpx.TokenVerifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AccountService *service.AccountService
	SessionService *service.SessionService

	// Optional: nil models answer 503, nil metrics disables /metrics.
	MaternalModel *predict.Model
	FetalModel    *predict.Model
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer

	// Now is the clock used for pregnancy progress.
	Now func() time.Time
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier httpx.TokenVerifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Now:          time.Now,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerProfile()
	r.registerGuide()
	r.registerPredict()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Hey Mumma API
//	@version		0.1.0
//	@description	Pregnancy tracker: accounts and profiles, week by week guide, and maternal and fetal risk checks.
//	@description
//	@description				Session tokens are EdDSA (Ed25519) JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				Hey Mumma Team
//	@contact.url				https://github.com/heymumma/heymumma
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
	var h http.Handler = r.Mux
	if r.Metrics != nil {
		// Instrument must sit directly on the mux to see the matched pattern.
		h = r.Metrics.Instrument(h)
	}
	httpx.Chain(h, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	signup := &SignupHandler{AccountService: r.AccountService, SessionService: r.SessionService}
	login := &LoginHandler{AccountService: r.AccountService, SessionService: r.SessionService}

	// POST /signup - strict rate limit by IP
	r.Mux.Handle("POST /v1/signup",
		httpx.Chain(signup,
			httpx.RateLimitByIP(httpx.AuthLimit),
		),
	)

	// POST /login - strict rate limit by IP + email to slow password guessing
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(login,
			httpx.RateLimitByIPAndField(httpx.AuthLimit, "email"),
		),
	)
}

func (r *Router) registerProfile() {
	h := &AccountHandler{AccountService: r.AccountService, Now: r.Now}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopeProfileRead),
			httpx.RateLimitByAccount(httpx.AccountLimit),
		)
	}

	r.Mux.Handle("GET /v1/me", read(h.HandleMe))
	r.Mux.Handle("GET /v1/me/profile/status", read(h.HandleProfileStatus))
	r.Mux.Handle("GET /v1/me/pregnancy", read(h.HandlePregnancy))

	r.Mux.Handle("PATCH /v1/me/profile",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateProfile),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopeProfileWrite),
			httpx.RateLimitByAccount(httpx.AccountLimit),
		),
	)
}

func (r *Router) registerGuide() {
	// Static content - high limit by IP
	r.Mux.Handle("GET /v1/guide/weeks/{week}",
		httpx.Chain(http.HandlerFunc(GuideWeekHandler),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/guide/milestones",
		httpx.Chain(http.HandlerFunc(MilestonesHandler),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerPredict() {
	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopePredict),
			httpx.RateLimitByAccount(httpx.AccountLimit),
		)
	}

	r.Mux.Handle("POST /v1/predict/maternal-risk", secured(&MaternalRiskHandler{Model: r.MaternalModel, Metrics: r.Metrics}))
	r.Mux.Handle("POST /v1/predict/fetal-health", secured(&FetalHealthHandler{Model: r.FetalModel, Metrics: r.Metrics}))
}

func (r *Router) registerSystem() {
	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	if r.Gatherer != nil {
		r.Mux.Handle("GET /metrics", MetricsHandler(r.Gatherer))
	}
}
