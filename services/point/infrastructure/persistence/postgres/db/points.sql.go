package db

import (
	"context"
	"database/sql"
	"time"
)

const insertPoint = `-- name: InsertPoint :one
INSERT INTO points (image, name, email, whatsapp, latitude, longitude, city, uf)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at
`

type InsertPointParams struct {
	Image     sql.NullString
	Name      string
	Email     string
	Whatsapp  string
	Latitude  float64
	Longitude float64
	City      string
	Uf        string
}

type InsertPointRow struct {
	ID        int64
	CreatedAt time.Time
}

func (q *Queries) InsertPoint(ctx context.Context, arg InsertPointParams) (InsertPointRow, error) {
	row := q.db.QueryRowContext(ctx, insertPoint,
		arg.Image,
		arg.Name,
		arg.Email,
		arg.Whatsapp,
		arg.Latitude,
		arg.Longitude,
		arg.City,
		arg.Uf,
	)
	var i InsertPointRow
	err := row.Scan(&i.ID, &i.CreatedAt)
	return i, err
}

const insertPointItem = `-- name: InsertPointItem :exec
INSERT INTO point_items (point_id, item_id) VALUES ($1, $2)
`

type InsertPointItemParams struct {
	PointID int64
	ItemID  int64
}

func (q *Queries) InsertPointItem(ctx context.Context, arg InsertPointItemParams) error {
	_, err := q.db.ExecContext(ctx, insertPointItem, arg.PointID, arg.ItemID)
	return err
}

const findMissingItemIDs = `-- name: FindMissingItemIDs :many
SELECT u.id
FROM unnest($1::bigint[]) WITH ORDINALITY AS u (id, ord)
LEFT JOIN items i ON i.id = u.id
WHERE i.id IS NULL
ORDER BY u.ord
`

func (q *Queries) FindMissingItemIDs(ctx context.Context, ids []int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, findMissingItemIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPointByID = `-- name: GetPointByID :one
SELECT id, image, name, email, whatsapp, latitude, longitude, city, uf, created_at
FROM points
WHERE id = $1
`

func (q *Queries) GetPointByID(ctx context.Context, id int64) (PointPoint, error) {
	row := q.db.QueryRowContext(ctx, getPointByID, id)
	var i PointPoint
	err := row.Scan(
		&i.ID,
		&i.Image,
		&i.Name,
		&i.Email,
		&i.Whatsapp,
		&i.Latitude,
		&i.Longitude,
		&i.City,
		&i.Uf,
		&i.CreatedAt,
	)
	return i, err
}

const filterPoints = `-- name: FilterPoints :many
SELECT p.id, p.image, p.name, p.email, p.whatsapp, p.latitude, p.longitude, p.city, p.uf, p.created_at
FROM points p
WHERE ($1::text = '' OR p.city = $1::text)
  AND ($2::text = '' OR p.uf = $2::text)
  AND (
    coalesce(cardinality($3::bigint[]), 0) = 0
    OR EXISTS (
      SELECT 1 FROM point_items pi
      WHERE pi.point_id = p.id AND pi.item_id = ANY ($3::bigint[])
    )
  )
ORDER BY p.id
`

type FilterPointsParams struct {
	City    string
	Uf      string
	ItemIds []int64
}

func (q *Queries) FilterPoints(ctx context.Context, arg FilterPointsParams) ([]PointPoint, error) {
	rows, err := q.db.QueryContext(ctx, filterPoints, arg.City, arg.Uf, arg.ItemIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PointPoint
	for rows.Next() {
		var i PointPoint
		if err := rows.Scan(
			&i.ID,
			&i.Image,
			&i.Name,
			&i.Email,
			&i.Whatsapp,
			&i.Latitude,
			&i.Longitude,
			&i.City,
			&i.Uf,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listItemsForPoints = `-- name: ListItemsForPoints :many
SELECT pi.point_id, i.id, i.title, i.image
FROM point_items pi
JOIN items i ON i.id = pi.item_id
WHERE pi.point_id = ANY ($1::bigint[])
ORDER BY pi.point_id, i.id
`

func (q *Queries) ListItemsForPoints(ctx context.Context, pointIds []int64) ([]PointItemRow, error) {
	rows, err := q.db.QueryContext(ctx, listItemsForPoints, pointIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PointItemRow
	for rows.Next() {
		var i PointItemRow
		if err := rows.Scan(&i.PointID, &i.ItemID, &i.Title, &i.Image); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
