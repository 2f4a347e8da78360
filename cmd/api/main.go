package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/z-reply/backend/internal/config"
	"github.com/zhouzirui/z-reply/backend/internal/handler"
	handlerReply "github.com/zhouzirui/z-reply/backend/internal/handler/reply"
	"github.com/zhouzirui/z-reply/backend/internal/logger"
	"github.com/zhouzirui/z-reply/backend/internal/model/reply"
	"github.com/zhouzirui/z-reply/backend/internal/observability/metrics"
	"github.com/zhouzirui/z-reply/backend/internal/repository/postgres"
	"github.com/zhouzirui/z-reply/backend/internal/service/ai"
	replyService "github.com/zhouzirui/z-reply/backend/internal/service/reply"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logg, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure logger")
	}
	if envErr != nil {
		logg.Debug().Err(envErr).Msg("no .env file loaded, using system environment only")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	replyMetrics := metrics.NewReplyMetrics(registry)

	// Initialize reply archive
	store, closeStore, err := openStore(ctx, cfg.Database, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to open reply store")
	}
	defer closeStore()

	archive, err := replyService.NewService(store, logg.With().Str("component", "archive").Logger(), replyMetrics)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to create archive service")
	}

	if cfg.Database.SeedSamples {
		if n, err := archive.SeedIfEmpty(ctx, replyService.Samples()); err != nil {
			logg.Warn().Err(err).Msg("failed to seed sample replies")
		} else if n > 0 {
			logg.Info().Int("count", n).Msg("seeded sample replies")
		}
	}

	// Initialize AI service
	var generator handlerReply.Generator
	if cfg.AI.Enabled() {
		completer, err := ai.NewCompleter(ctx, cfg.AI)
		if err != nil {
			logg.Warn().Err(err).Msg("failed to initialize AI completer, continuing without reply generation")
		} else {
			aiService, err := ai.NewService(completer,
				ai.WithTimeout(cfg.AI.Timeout),
				ai.WithLogger(logg.With().Str("component", "ai").Logger()),
				ai.WithMetrics(replyMetrics),
			)
			if err != nil {
				logg.Fatal().Err(err).Msg("failed to create AI service")
			}
			generator = aiService
			logg.Info().Str("provider", cfg.AI.Provider).Msg("AI service initialized successfully")
		}
	} else {
		logg.Warn().Str("provider", cfg.AI.Provider).Msg("LLM credentials not configured, reply generation disabled")
	}

	router := handler.NewRouter(archive, generator, handler.Options{
		Logger:         logg,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Gatherer:       registry,
		Health:         archive,
	})

	startServer(ctx, cfg.Server, router, logg)
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, logg zerolog.Logger) (reply.Store, func(), error) {
	if !cfg.Enabled() {
		logg.Warn().Msg("DATABASE_URL not set, saved replies are kept in memory only")
		return reply.NewMemoryStore(), func() {}, nil
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(cfg.URL); err != nil {
			return nil, nil, err
		}
		logg.Info().Msg("database migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.URL, postgres.PoolConfig{MaxConns: cfg.MaxConns})
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewStore(pool), pool.Close, nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logg zerolog.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logg.Info().Str("addr", addr).Msg("Z Reply backend listening")
	if err := runServer(ctx, srv); err != nil {
		logg.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
