package bootstrap

import (
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/clock"
	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
	commonhttp "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/http"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

type RouterDeps struct {
	Log         *logger.Logger
	Errors      *commonhttp.ErrorHandler
	Limiter     *commonhttp.StrictRateLimiter
	Clock       clock.Clock
	CORSOrigins []string

	// TrustedProxies may rewrite the client address via forwarding headers.
	TrustedProxies []netip.Prefix
	StaticDir      string
	Auth           http.Handler
	Reviews        http.Handler
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", commonhttp.HealthHandler(d.Clock))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if d.Limiter != nil {
			r.Use(d.Limiter.General())
		}
		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			d.Errors.HandleError(w, req, commonerrors.ErrRouteNotFound)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
			d.Errors.HandleError(w, req, commonerrors.ErrMethodNotAllowed)
		})
		r.Mount("/auth", d.Auth)
		r.Mount("/reviews", d.Reviews)
	})

	if d.StaticDir != "" {
		r.NotFound(commonhttp.SPAHandler(d.StaticDir).ServeHTTP)
	} else {
		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			d.Errors.HandleError(w, req, commonerrors.ErrRouteNotFound)
		})
	}

	realIP := commonhttp.TrustedRealIPMiddleware(d.TrustedProxies)
	return realIP(commonhttp.BuildBaseHandler(AppName, d.Log, d.Errors, r))
}
