package services

import (
	"github.com/ecoleta/ecoleta/pkg/app"
	"github.com/ecoleta/ecoleta/pkg/cache"
	"github.com/ecoleta/ecoleta/services/point/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Registration *RegistrationService
	Point        *PointService
}

// New wires all point application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewPointRepository(a.Db, a.EventBus)

	var pointCache PointCache
	if a.Redis != nil {
		pointCache = cache.NewPointCache(a.Redis)
	}
	var photos PhotoStore
	if a.Storage != nil {
		photos = a.Storage
	}

	return &Services{
		Registration: NewRegistrationService(repo, photos, a.Logger, a.Metrics),
		Point:        NewPointService(repo, pointCache, a.Logger),
	}
}
