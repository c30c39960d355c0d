package db

import (
	"context"
)

const listItems = `-- name: ListItems :many
SELECT id, title, image FROM items ORDER BY id
`

func (q *Queries) ListItems(ctx context.Context) ([]ItemItem, error) {
	rows, err := q.db.QueryContext(ctx, listItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ItemItem
	for rows.Next() {
		var i ItemItem
		if err := rows.Scan(&i.ID, &i.Title, &i.Image); err != nil {
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
