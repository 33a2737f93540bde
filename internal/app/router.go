package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/ratelimit"
	"github.com/heartmarshall/focloireacht-backend/internal/auth"
	"github.com/heartmarshall/focloireacht-backend/internal/config"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
	"github.com/heartmarshall/focloireacht-backend/internal/observability"
	"github.com/heartmarshall/focloireacht-backend/internal/transport/middleware"
	"github.com/heartmarshall/focloireacht-backend/internal/transport/rest"
)

// Handlers are the REST handlers mounted by NewRouter.
type Handlers struct {
	Health     *rest.HealthHandler
	Vote       *rest.VoteHandler
	Moderation *rest.ModerationHandler
	Search     *rest.SearchHandler
	Dictionary *rest.DictionaryHandler
	Admin      *rest.AdminHandler

	// Metrics serves the Prometheus exposition. Nil disables the endpoint.
	Metrics http.Handler
}

// RouterConfig holds the cross-cutting pieces the router wraps around
// every route.
type RouterConfig struct {
	Logger      *slog.Logger
	Tokens      *auth.JWTManager
	Limiter     ratelimit.Limiter
	Metrics     *observability.Metrics
	CORS        config.CORSConfig
	MetricsPath string
}

// NewRouter mounts every route on a ServeMux and wraps it in the global
// middleware chain: recovery, request id, logging, CORS, auth, then
// per-route metrics.
func NewRouter(h Handlers, rc RouterConfig) http.Handler {
	limit := func(rule ratelimit.Rule, key middleware.KeyFunc) middleware.Middleware {
		return middleware.RateLimit(rc.Limiter, rule, key, rc.Metrics, rc.Logger)
	}
	api := limit(ratelimit.RuleAPI, middleware.ByIP)
	searchLimit := limit(ratelimit.RuleSearch, middleware.ByIP)
	voteLimit := limit(ratelimit.RuleVote, middleware.UserOrIP)
	submitLimit := limit(ratelimit.RuleSubmit, middleware.UserOrIP)
	member := middleware.RequireRole(domain.UserRoleContributor.String(), domain.UserRoleEditor.String(), domain.UserRoleAdmin.String())
	editor := middleware.RequireRole(domain.UserRoleEditor.String(), domain.UserRoleAdmin.String())
	admin := middleware.RequireRole(domain.UserRoleAdmin.String())

	base := middleware.Stack{api}
	public := base.Then
	submit := base.With(submitLimit).Then
	members := base.With(member).Then
	moderators := base.With(editor).Then
	admins := base.With(admin).Then

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		path := rc.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, h.Metrics)
	}

	mux.Handle("POST /votes", base.With(voteLimit).Then(h.Vote.Cast))

	mux.Handle("POST /submissions", submit(h.Moderation.CreateSubmission))
	mux.Handle("GET /submissions", moderators(h.Moderation.ListSubmissions))
	mux.Handle("GET /submissions/{id}", members(h.Moderation.GetSubmission))
	mux.Handle("POST /submissions/{id}/review", moderators(h.Moderation.ReviewSubmission))
	mux.Handle("POST /reports", submit(h.Moderation.CreateReport))
	mux.Handle("POST /suggestions", submit(h.Moderation.CreateSuggestion))

	mux.Handle("GET /moderation/submissions", moderators(h.Moderation.ListSubmissions))
	mux.Handle("GET /moderation/reports", moderators(h.Moderation.ListReports))
	mux.Handle("POST /moderation/reports/{id}/review", moderators(h.Moderation.ReviewReport))
	mux.Handle("GET /moderation/suggestions", moderators(h.Moderation.ListSuggestions))
	mux.Handle("POST /moderation/suggestions/{id}/review", moderators(h.Moderation.ReviewSuggestion))
	mux.Handle("GET /moderation/stats", moderators(h.Moderation.Stats))

	mux.Handle("GET /search", base.With(searchLimit).Then(h.Search.Search))
	mux.Handle("GET /entries/top", public(h.Dictionary.TopEntries))
	mux.Handle("GET /entries/recent", public(h.Dictionary.RecentEntries))
	mux.Handle("GET /entries/{slug}", public(h.Dictionary.Entry))
	mux.Handle("GET /entries/{id}/similar", public(h.Search.Similar))
	mux.Handle("GET /regions", public(h.Dictionary.Regions))
	mux.Handle("GET /regions/{slug}", public(h.Dictionary.Region))

	mux.Handle("GET /admin/users", admins(h.Admin.ListUsers))
	mux.Handle("PUT /admin/users/{id}/role", admins(h.Admin.SetRole))

	return middleware.Chain(
		middleware.Recovery(rc.Logger),
		middleware.RequestID(),
		middleware.Logger(rc.Logger),
		middleware.CORS(rc.CORS),
		middleware.Auth(rc.Tokens),
		middleware.Metrics(rc.Metrics),
	)(mux)
}
