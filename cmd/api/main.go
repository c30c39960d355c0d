package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ecoleta/ecoleta/assets"
	_ "github.com/ecoleta/ecoleta/docs/swagger"
	"github.com/ecoleta/ecoleta/pkg/app"
	"github.com/ecoleta/ecoleta/pkg/cache"
	"github.com/ecoleta/ecoleta/pkg/config"
	"github.com/ecoleta/ecoleta/pkg/database"
	"github.com/ecoleta/ecoleta/pkg/events"
	"github.com/ecoleta/ecoleta/pkg/httpx"
	"github.com/ecoleta/ecoleta/pkg/logger"
	"github.com/ecoleta/ecoleta/pkg/media"
	"github.com/ecoleta/ecoleta/pkg/storage"
	"github.com/ecoleta/ecoleta/pkg/telemetry"
	itemApi "github.com/ecoleta/ecoleta/services/item/application/api"
	pointApi "github.com/ecoleta/ecoleta/services/point/application/api"
)

// multipart framing and text fields on top of the photo itself
const formOverheadBytes = 1 << 20

// @title			Ecoleta API
// @version		1.0
// @description	Directory of recycling collection points and the materials they accept.
// @contact.name	Ecoleta
// @contact.email	contato@ecoleta.example
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:3333
// @BasePath		/
// @schemes		http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	metrics, err := telemetry.NewRegistrationMetrics()
	if err != nil {
		log.Error("failed to create registration metrics", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}

	// Crash reporting is optional: log and continue on failure.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	var redisClient *cache.RedisClient
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")
	} else {
		log.Warn("REDIS_URL empty, caches disabled")
	}

	store, err := storage.NewOSDiskStore(cfg.UploadDir)
	if err != nil {
		log.Error("failed to prepare upload directory", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	provisioned, err := store.Provision(ctx, assets.Uploads)
	if err != nil {
		log.Error("failed to provision item icons", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("upload storage ready",
		"dir", cfg.UploadDir,
		"media_base_url", cfg.MediaBaseURL,
		"icons_provisioned", provisioned,
	)

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Storage:  store,
		Media:    media.NewURLBuilder(cfg.MediaBaseURL),
		Metrics:  metrics,
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			MaxBodyBytes:       cfg.UploadMaxBytes + formOverheadBytes,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	checks := httpx.HealthChecks{
		Database: pool,
		EventBus: eventBus,
		Storage:  store,
	}
	if redisClient != nil {
		checks.Redis = redisClient
	}
	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(store.FileSystem())))
	registerRoutes(r, appConfig)

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes at the root.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	itemApi.ItemRoutes(r, a)
	pointApi.PointRoutes(r, a)
}
