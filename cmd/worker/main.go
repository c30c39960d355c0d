package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ecoleta/ecoleta/pkg/app"
	"github.com/ecoleta/ecoleta/pkg/cache"
	"github.com/ecoleta/ecoleta/pkg/config"
	"github.com/ecoleta/ecoleta/pkg/database"
	"github.com/ecoleta/ecoleta/pkg/events"
	"github.com/ecoleta/ecoleta/pkg/logger"
	"github.com/ecoleta/ecoleta/pkg/telemetry"
	pointsvcs "github.com/ecoleta/ecoleta/services/point/application/services"
	pointDomain "github.com/ecoleta/ecoleta/services/point/domain"
	pointEvents "github.com/ecoleta/ecoleta/services/point/domain/events"
)

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

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := registerSubscribers(subCtx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	points := pointsvcs.New(a).Point

	errCh, err := a.EventBus.Subscribe(ctx, pointEvents.TopicPointCreated, handlePointCreated(a.Logger, points))
	if err != nil {
		return err
	}

	// Drain subscriber errors so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", pointEvents.TopicPointCreated,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{pointEvents.TopicPointCreated})
	return nil
}

// pointWarmer loads a point into the read-model cache.
type pointWarmer interface {
	Warm(ctx context.Context, id int64) error
}

// handlePointCreated warms the point cache so the first GET /points/{id}
// after a registration is served from Redis. Warming is idempotent; a failure
// is returned so the bus retries it.
func handlePointCreated(log logger.Logger, points pointWarmer) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt pointEvents.PointCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			// A malformed payload never becomes valid; drop it.
			log.ErrorContext(ctx, "discarding malformed point.created event",
				"message_uuid", msg.UUID, "error", err)
			return nil
		}

		err := points.Warm(ctx, evt.PointID)
		if errors.Is(err, pointDomain.ErrPointNotFound) {
			log.WarnContext(ctx, "point.created for missing point", "point_id", evt.PointID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("warm point %d: %w", evt.PointID, err)
		}
		log.InfoContext(ctx, "point cache warmed",
			"point_id", evt.PointID, "uf", evt.UF, "city", evt.City)
		return nil
	}
}
