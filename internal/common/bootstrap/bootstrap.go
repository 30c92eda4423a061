package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v4/pgxpool"

	authhttp "github.com/hoangtung01022003/Animation-Film-Showcase/internal/auth/http"
	authservice "github.com/hoangtung01022003/Animation-Film-Showcase/internal/auth/service"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/clock"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/config"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/constants"
	commoncrypto "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/crypto"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/db"
	commonhttp "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/http"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/jwtverify"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/server"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/feed"
	reviewhttp "github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/http"
	reviewrepo "github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/repository"
	reviewservice "github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/service"
	userrepo "github.com/hoangtung01022003/Animation-Film-Showcase/internal/user/repository"
)

const AppName = "moviereview"

// App owns every long-lived resource of the serve command.
type App struct {
	Config  config.AppConfig
	Log     *logger.Logger
	Pool    *pgxpool.Pool
	Hub     *feed.Hub
	Handler http.Handler
	limiter *commonhttp.StrictRateLimiter
}

func NewApp(ctx context.Context, cfg config.AppConfig, log *logger.Logger) (*App, error) {
	hasher, err := commoncrypto.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	pool, err := db.NewPool(ctx, log, cfg.DB, AppName)
	if err != nil {
		return nil, err
	}

	clk := clock.NewRealClock()
	breaker := db.NewDBCircuitBreaker(
		constants.DefaultCircuitBreakerThreshold,
		cfg.DB.AcquireTimeout,
		constants.DefaultCircuitBreakerReset,
		log,
	)
	idGenerator := commoncrypto.NewUUIDGenerator()
	errs := commonhttp.NewErrorHandler(log, !cfg.IsProduction())
	limiter := commonhttp.NewStrictRateLimiter(errs)
	verifier := jwtverify.NewVerifier(cfg.JWTSecret, clk)

	authService := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:        userrepo.NewPgRepository(pool, breaker),
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Clock:       clk,
		Log:         log,
	}, authservice.AuthServiceConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	})

	var (
		hub        *feed.Hub
		publisher  reviewservice.Publisher
		feedHandle http.Handler
	)
	if cfg.FeedEnabled {
		hub = feed.NewHub(log)
		publisher = hub
		feedHandle = feed.Handler(hub, cfg.CORSOrigins, log)
	}

	reviewService := reviewservice.NewReviewService(reviewservice.Deps{
		Repo:        reviewrepo.NewPgRepository(pool, db.NewTxManager(pool), breaker),
		IDGenerator: idGenerator,
		Publisher:   publisher,
		Log:         log,
	})

	handler := NewRouter(RouterDeps{
		Log:            log,
		Errors:         errs,
		Limiter:        limiter,
		Clock:          clk,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		StaticDir:      cfg.StaticDir,
		Auth: authhttp.NewHandler(authhttp.Deps{
			Auth:           authService,
			Verifier:       verifier,
			Limiter:        limiter,
			Errors:         errs,
			RequestTimeout: cfg.RequestTimeout,
			Log:            log,
		}),
		Reviews: reviewhttp.NewHandler(reviewhttp.Deps{
			Reviews:        reviewService,
			Verifier:       verifier,
			Errors:         errs,
			RequestTimeout: cfg.RequestTimeout,
			Feed:           feedHandle,
			Log:            log,
		}),
	})

	return &App{
		Config:  cfg,
		Log:     log,
		Pool:    pool,
		Hub:     hub,
		Handler: handler,
		limiter: limiter,
	}, nil
}

// Run serves until ctx is cancelled, then drains requests and releases the
// feed hub, the rate limiters and the pool, in that order.
func (a *App) Run(ctx context.Context) error {
	if a.Hub != nil {
		go a.Hub.Run(context.WithoutCancel(ctx))
	}
	db.StartPoolMetrics(ctx, a.Pool, constants.DBPoolMetricsInterval)

	cfg := server.DefaultServerConfig(a.Config.HTTPPort)
	srv := server.NewServer(cfg, a.Handler)

	return server.Run(ctx, srv, a.Log, AppName, cfg.ShutdownTimeout,
		func(ctx context.Context) error {
			if a.Hub == nil {
				return nil
			}
			a.Hub.Stop()
			select {
			case <-a.Hub.Stopped():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		func(context.Context) error {
			a.limiter.Stop()
			return nil
		},
		func(context.Context) error {
			a.Pool.Close()
			return nil
		},
	)
}

// Close releases resources when the app is abandoned before Run.
func (a *App) Close() {
	if a.Hub != nil {
		a.Hub.Stop()
	}
	a.limiter.Stop()
	a.Pool.Close()
}
