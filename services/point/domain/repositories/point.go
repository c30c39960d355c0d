package repositories

import (
	"context"

	"github.com/ecoleta/ecoleta/services/point/domain/models"
)

// PointRepository is the persistence interface for the Point aggregate.
// The domain layer owns this interface; infrastructure implements it.
type PointRepository interface {
	// Create stores p and its item associations atomically and returns the
	// point with its assigned id and joined items. Unknown item ids yield an
	// *domain.UnknownItemsError and nothing is written.
	Create(ctx context.Context, p *models.NewPoint) (*models.Point, error)

	// GetByID returns the point with its items, or domain.ErrPointNotFound.
	GetByID(ctx context.Context, id int64) (*models.Point, error)

	// List returns points matching f ordered by id, each with its items.
	List(ctx context.Context, f models.Filter) ([]*models.Point, error)
}
