package app

import (
	"github.com/ecoleta/ecoleta/pkg/cache"
	"github.com/ecoleta/ecoleta/pkg/config"
	"github.com/ecoleta/ecoleta/pkg/database"
	"github.com/ecoleta/ecoleta/pkg/events"
	"github.com/ecoleta/ecoleta/pkg/logger"
	"github.com/ecoleta/ecoleta/pkg/media"
	"github.com/ecoleta/ecoleta/pkg/storage"
	"github.com/ecoleta/ecoleta/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to every service's route registration during server start.
//
// Logging: app.Logger is trace-aware. Use the context methods inside request
// paths and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "point registered", "point_id", id)
//	app.Logger.WarnContext(ctx, "orphaned photo", "filename", name)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	// Redis is nil when no cache is configured; services then read Postgres only.
	Redis   *cache.RedisClient
	Storage *storage.DiskStore
	Media   media.URLBuilder
	Metrics *telemetry.RegistrationMetrics
}
