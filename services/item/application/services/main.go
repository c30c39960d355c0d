package services

import (
	"github.com/ecoleta/ecoleta/pkg/app"
	"github.com/ecoleta/ecoleta/pkg/cache"
	"github.com/ecoleta/ecoleta/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the item catalog.
type Services struct {
	Catalog *CatalogService
}

// New wires the catalog services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	var catalogCache CatalogCache
	if a.Redis != nil {
		catalogCache = cache.NewCatalogCache(a.Redis)
	}
	return &Services{
		Catalog: NewCatalogService(postgres.NewItemRepository(a.Db), catalogCache, a.Logger),
	}
}
