package repositories

import (
	"context"

	"github.com/ecoleta/ecoleta/services/item/domain/models"
)

// ItemRepository is the persistence interface for the item catalog.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// List returns every item ordered by id.
	List(ctx context.Context) ([]*models.Item, error)
}
