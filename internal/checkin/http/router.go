package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/yokohama-dev/tsukuba/internal/checkin/service"
	"github.com/yokohama-dev/tsukuba/internal/checkin/store"
	"github.com/yokohama-dev/tsukuba/pkg/httpx"
	"github.com/yokohama-dev/tsukuba/pkg/slogx"

	_ "github.com/yokohama-dev/tsukuba/api/checkin" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	CheckinService *service.CheckinService
	UserService    *service.UserService
	SessionService *service.SessionService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
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
	r.registerCheckins()
	r.registerUsers()
	r.registerUsersMe()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Presence Check-in Service API
//	@version		0.1.0
//	@description	Records which network location a user was active from during each
//	@description	hour and exposes visibility-filtered presence history.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque credential. Format: "Bearer {userID:secret}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerCheckins() {
	checkinsHandler := &CheckinsHandler{CheckinService: r.CheckinService}

	// POST /checkins - the bearer credential identifies the user; the HTTP
	// limiter guards request volume while the service enforces the domain
	// per-hour bucket limit.
	r.Mux.Handle("POST /checkins",
		httpx.Chain(checkinsHandler,
			httpx.AuthnBearer(r.SessionService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	listHandler := &UsersListHandler{
		UserService:    r.UserService,
		CheckinService: r.CheckinService,
	}
	r.Mux.Handle("GET /users",
		httpx.Chain(listHandler,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	profileHandler := &UserProfileHandler{
		UserService:    r.UserService,
		CheckinService: r.CheckinService,
	}
	// The literal /users/me patterns below are more specific and win over
	// this wildcard for ServeMux routing.
	r.Mux.Handle("GET /users/{atScreenName}",
		httpx.Chain(profileHandler,
			httpx.AuthnSessionOptional(r.SessionService),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerUsersMe() {
	registerHandler := &RegisterHandler{
		UserService:    r.UserService,
		SessionService: r.SessionService,
	}
	r.Mux.Handle("POST /users/me",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	meHandler := &MeHandler{UserService: r.UserService}
	r.Mux.Handle("GET /users/me",
		httpx.Chain(meHandler,
			httpx.AuthnSession(r.SessionService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	updateHandler := &UpdateMeHandler{UserService: r.UserService}
	r.Mux.Handle("PATCH /users/me",
		httpx.Chain(updateHandler,
			httpx.AuthnSession(r.SessionService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	rotateHandler := &RotateTokenHandler{
		UserService:    r.UserService,
		SessionService: r.SessionService,
	}
	r.Mux.Handle("GET /users/me/token",
		httpx.Chain(rotateHandler,
			httpx.AuthnSession(r.SessionService),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	signinHandler := &SigninHandler{
		UserService:    r.UserService,
		SessionService: r.SessionService,
	}
	r.Mux.Handle("POST /users/me/signin",
		httpx.Chain(signinHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /users/me/signout",
		httpx.Chain(http.HandlerFunc(SignoutHandler),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
