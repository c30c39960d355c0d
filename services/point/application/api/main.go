package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ecoleta/ecoleta/pkg/app"
	"github.com/ecoleta/ecoleta/services/point/application/handlers"
	appsvcs "github.com/ecoleta/ecoleta/services/point/application/services"
)

// PointRoutes registers point endpoints on the provided chi router.
func PointRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/points", func(r chi.Router) {
		r.Get("/", handlers.NewGetPointsHandler(svcs, a.Media).Execute)
		r.Post("/", handlers.NewPostPointHandler(svcs, a.Media).Execute)
		r.Get("/{id}", handlers.NewGetPointHandler(svcs, a.Media).Execute)
	})
}
