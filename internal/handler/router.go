package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-reply/backend/internal/handler/reply"
	middlewarePkg "github.com/zhouzirui/z-reply/backend/internal/middleware"
	"github.com/zhouzirui/z-reply/backend/pkg/utils"
)

// Pinger reports store reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options carries the ambient wiring of the router.
type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer
	Health         Pinger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(archive reply.Archive, generator reply.Generator, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.AllowedOrigins))

	replyHandler := reply.New(archive, generator, opts.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Health != nil {
			if err := opts.Health.Ping(r.Context()); err != nil {
				opts.Logger.Warn().Err(err).Msg("health check failed")
				utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(api chi.Router) {
		replyHandler.RegisterRoutes(api)
	})

	return r
}
