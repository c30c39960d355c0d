package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ecoleta/ecoleta/pkg/database"
	"github.com/ecoleta/ecoleta/pkg/events"
	pointdomain "github.com/ecoleta/ecoleta/services/point/domain"
	domainevents "github.com/ecoleta/ecoleta/services/point/domain/events"
	"github.com/ecoleta/ecoleta/services/point/domain/models"
	"github.com/ecoleta/ecoleta/services/point/infrastructure/persistence/postgres/db"
)

const fkViolation = "23503"

// PointRepository implements repositories.PointRepository against PostgreSQL.
type PointRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewPointRepository returns a PointRepository on the given pool. When bus
// is non-nil a PointCreatedEvent is written in every Create transaction.
func NewPointRepository(database *database.Database, bus *events.EventBus) *PointRepository {
	return &PointRepository{db: database, bus: bus}
}

// Create inserts the point, one point_items row per id and the outbox event
// in a single transaction. Unknown item ids roll everything back.
func (r *PointRepository) Create(ctx context.Context, p *models.NewPoint) (*models.Point, error) {
	var created *models.Point
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)

		missing, err := q.FindMissingItemIDs(ctx, p.ItemIDs)
		if err != nil {
			return fmt.Errorf("check items: %w", err)
		}
		if len(missing) > 0 {
			return &pointdomain.UnknownItemsError{IDs: missing}
		}

		row, err := q.InsertPoint(ctx, db.InsertPointParams{
			Image:     sql.NullString{String: p.Image, Valid: p.Image != ""},
			Name:      p.Name,
			Email:     p.Email,
			Whatsapp:  p.Whatsapp,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			City:      p.City,
			Uf:        p.UF,
		})
		if err != nil {
			return fmt.Errorf("insert point: %w", err)
		}

		for _, itemID := range p.ItemIDs {
			if err := q.InsertPointItem(ctx, db.InsertPointItemParams{
				PointID: row.ID,
				ItemID:  itemID,
			}); err != nil {
				return pointItemInsertError(err, itemID)
			}
		}

		items, err := q.ListItemsForPoints(ctx, []int64{row.ID})
		if err != nil {
			return fmt.Errorf("load point items: %w", err)
		}

		created = &models.Point{
			ID:        row.ID,
			Name:      p.Name,
			Email:     p.Email,
			Whatsapp:  p.Whatsapp,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			City:      p.City,
			UF:        p.UF,
			Image:     p.Image,
			CreatedAt: row.CreatedAt,
			Items:     rowsToItems(items),
		}

		if r.bus != nil {
			if err := r.publishCreated(ctx, tx, created); err != nil {
				return fmt.Errorf("publish point created: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// pointItemInsertError maps a foreign-key violation on point_items.item_id,
// an item deleted after the existence check, to UnknownItemsError.
func pointItemInsertError(err error, itemID int64) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
		return &pointdomain.UnknownItemsError{IDs: []int64{itemID}}
	}
	return fmt.Errorf("insert point item %d: %w", itemID, err)
}

// GetByID returns the point with its items. Returns ErrPointNotFound if no
// row matches.
func (r *PointRepository) GetByID(ctx context.Context, id int64) (*models.Point, error) {
	q := db.New(r.db.DB())
	row, err := q.GetPointByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pointdomain.ErrPointNotFound
		}
		return nil, fmt.Errorf("query point: %w", err)
	}

	items, err := q.ListItemsForPoints(ctx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("query point items: %w", err)
	}

	p := rowToPoint(row)
	p.Items = rowsToItems(items)
	return p, nil
}

// List returns the points matching f, ordered by id, with their items.
func (r *PointRepository) List(ctx context.Context, f models.Filter) ([]*models.Point, error) {
	q := db.New(r.db.DB())
	rows, err := q.FilterPoints(ctx, db.FilterPointsParams{
		City:    f.City,
		Uf:      f.UF,
		ItemIds: f.ItemIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}
	if len(rows) == 0 {
		return []*models.Point{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	itemRows, err := q.ListItemsForPoints(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("query point items: %w", err)
	}

	byPoint := make(map[int64][]db.PointItemRow, len(rows))
	for _, ir := range itemRows {
		byPoint[ir.PointID] = append(byPoint[ir.PointID], ir)
	}

	points := make([]*models.Point, len(rows))
	for i, row := range rows {
		p := rowToPoint(row)
		p.Items = rowsToItems(byPoint[row.ID])
		points[i] = p
	}
	return points, nil
}

func (r *PointRepository) publishCreated(ctx context.Context, tx *sql.Tx, p *models.Point) error {
	event := domainevents.PointCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		PointID:    p.ID,
		City:       p.City,
		UF:         p.UF,
		ItemIDs:    p.ItemIDs(),
		OccurredAt: p.CreatedAt.UTC(),
	}
	msg, err := events.NewJSONMessage(ctx, event.EventID.String(), event.Version, event)
	if err != nil {
		return err
	}
	pub, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return pub.Publish(domainevents.TopicPointCreated, msg)
}

func rowToPoint(row db.PointPoint) *models.Point {
	return &models.Point{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Whatsapp:  row.Whatsapp,
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
		City:      row.City,
		UF:        row.Uf,
		Image:     row.Image.String,
		CreatedAt: row.CreatedAt,
		Items:     []models.AcceptedItem{},
	}
}

func rowsToItems(rows []db.PointItemRow) []models.AcceptedItem {
	items := make([]models.AcceptedItem, len(rows))
	for i, row := range rows {
		items[i] = models.AcceptedItem{ID: row.ItemID, Title: row.Title, Image: row.Image}
	}
	return items
}

