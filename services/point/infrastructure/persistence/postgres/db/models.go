package db

import (
	"database/sql"
	"time"
)

type PointPoint struct {
	ID        int64
	Image     sql.NullString
	Name      string
	Email     string
	Whatsapp  string
	Latitude  float64
	Longitude float64
	City      string
	Uf        string
	CreatedAt time.Time
}

type PointItemRow struct {
	PointID int64
	ItemID  int64
	Title   string
	Image   string
}
