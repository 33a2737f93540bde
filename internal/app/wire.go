package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/entry"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/region"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/report"
	searchrepo "github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/search"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/submission"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/suggestion"
	userrepo "github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/user"
	voterepo "github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/vote"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/ratelimit"
	"github.com/heartmarshall/focloireacht-backend/internal/auth"
	"github.com/heartmarshall/focloireacht-backend/internal/config"
	"github.com/heartmarshall/focloireacht-backend/internal/observability"
	"github.com/heartmarshall/focloireacht-backend/internal/service/dictionary"
	"github.com/heartmarshall/focloireacht-backend/internal/service/moderation"
	"github.com/heartmarshall/focloireacht-backend/internal/service/search"
	"github.com/heartmarshall/focloireacht-backend/internal/service/user"
	"github.com/heartmarshall/focloireacht-backend/internal/service/vote"
	"github.com/heartmarshall/focloireacht-backend/internal/transport/rest"
)

const (
	memoryLimiterSweep = time.Minute
	redisPingTimeout   = 3 * time.Second
)

// Container is the fully wired application.
type Container struct {
	Handler http.Handler
	Tokens  *auth.JWTManager
	Users   *user.Service

	closers []func()
}

// Close releases resources owned by the container. The pool is not closed.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build wires repositories, services and HTTP handlers on top of pool.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*Container, error) {
	c := &Container{}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	checks := map[string]rest.Check{
		"database": func(ctx context.Context) error { return pool.Ping(ctx) },
	}

	limiter, redisCheck, closeLimiter := newLimiter(ctx, cfg, logger)
	if closeLimiter != nil {
		c.closers = append(c.closers, closeLimiter)
	}
	if redisCheck != nil {
		checks["redis"] = redisCheck
	}

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	tx := postgres.NewTxManager(pool)

	entries := entry.New(pool)
	regions := region.New(pool)
	votes := voterepo.New(pool)
	users := userrepo.New(pool)

	voteSvc := vote.NewService(logger, votes, entries, tx, metrics)
	moderationSvc := moderation.NewService(logger,
		submission.New(pool), report.New(pool), suggestion.New(pool),
		entries, regions, tx, metrics)
	searchSvc := search.NewService(logger, searchrepo.New(pool), cfg.Search)
	dictionarySvc := dictionary.NewService(logger, entries, regions)
	userSvc := user.NewService(logger, users, tokens)

	h := Handlers{
		Health:     rest.NewHealthHandler(BuildVersion(), checks, "database"),
		Vote:       rest.NewVoteHandler(voteSvc, logger),
		Moderation: rest.NewModerationHandler(moderationSvc, logger),
		Search:     rest.NewSearchHandler(searchSvc, logger),
		Dictionary: rest.NewDictionaryHandler(dictionarySvc, voteSvc, logger),
		Admin:      rest.NewAdminHandler(userSvc, logger),
	}
	if cfg.Metrics.Enabled {
		h.Metrics = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}

	c.Handler = NewRouter(h, RouterConfig{
		Logger:      logger,
		Tokens:      tokens,
		Limiter:     limiter,
		Metrics:     metrics,
		CORS:        cfg.CORS,
		MetricsPath: cfg.Metrics.Path,
	})
	c.Tokens = tokens
	c.Users = userSvc
	return c, nil
}

// newLimiter builds the configured rate limiter. An unreachable Redis
// disables limiting instead of failing startup.
func newLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ratelimit.Limiter, rest.Check, func()) {
	switch backend := cfg.RateLimit.EffectiveBackend(); backend {
	case config.RateLimitBackendRedis:
		rdb := goredis.NewClient(&goredis.Options{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		check := func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		closeFn := func() { _ = rdb.Close() }

		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := check(pingCtx); err != nil {
			logger.Warn("redis unavailable, rate limiting disabled",
				slog.String("addr", cfg.Redis.Addr),
				slog.String("error", err.Error()),
			)
			return ratelimit.Noop{}, check, closeFn
		}
		logger.Info("rate limiter ready", slog.String("backend", backend))
		return ratelimit.NewRedis(rdb), check, closeFn

	case config.RateLimitBackendMemory:
		m := ratelimit.NewMemory(memoryLimiterSweep)
		logger.Info("rate limiter ready", slog.String("backend", backend))
		return m, nil, m.Stop

	default:
		logger.Info("rate limiting disabled", slog.String("backend", backend))
		return ratelimit.Noop{}, nil, nil
	}
}
