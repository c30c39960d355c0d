package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ecoleta/ecoleta/pkg/app"
	"github.com/ecoleta/ecoleta/services/item/application/handlers"
	appsvcs "github.com/ecoleta/ecoleta/services/item/application/services"
)

// ItemRoutes registers catalog endpoints on the provided chi router.
func ItemRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Get("/items", handlers.NewGetItemsHandler(svcs, a.Media).Execute)
}
