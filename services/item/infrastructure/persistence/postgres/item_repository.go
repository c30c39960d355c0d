package postgres

import (
	"context"
	"fmt"

	"github.com/ecoleta/ecoleta/pkg/database"
	itemdomain "github.com/ecoleta/ecoleta/services/item/domain"
	"github.com/ecoleta/ecoleta/services/item/domain/models"
	domainsvcs "github.com/ecoleta/ecoleta/services/item/domain/services"
	"github.com/ecoleta/ecoleta/services/item/infrastructure/persistence/postgres/db"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db *database.Database
}

// NewItemRepository returns an ItemRepository backed by the given connection pool.
func NewItemRepository(database *database.Database) *ItemRepository {
	return &ItemRepository{db: database}
}

// List returns the whole catalog ordered by id. A row that violates the
// item invariants fails the call with ErrInvalidItem.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	q := db.New(r.db.DB())
	rows, err := q.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		item := rowToItem(row)
		if err := domainsvcs.ValidateCatalogItem(item); err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", itemdomain.ErrInvalidItem, row.ID, err)
		}
		items[i] = item
	}
	return items, nil
}

// rowToItem maps a db.ItemItem to a domain models.Item.
func rowToItem(row db.ItemItem) *models.Item {
	return &models.Item{
		ID:    row.ID,
		Title: models.ItemTitle(row.Title),
		Image: row.Image,
	}
}
