package models

import (
	"io"
	"time"
)

// Point is a registered collection point and the items it accepts.
type Point struct {
	ID        int64
	Name      string
	Email     string
	Whatsapp  string
	Latitude  float64
	Longitude float64
	City      string
	UF        string
	// Image is the stored photo filename; empty when none was uploaded.
	Image     string
	CreatedAt time.Time
	Items     []AcceptedItem
}

// HasPhoto reports whether a photo was stored for the point.
func (p *Point) HasPhoto() bool {
	return p.Image != ""
}

// ItemIDs returns the ids of the accepted items in order.
func (p *Point) ItemIDs() []int64 {
	ids := make([]int64, len(p.Items))
	for i, it := range p.Items {
		ids[i] = it.ID
	}
	return ids
}

// AcceptedItem is a catalog item as seen from a point.
type AcceptedItem struct {
	ID    int64
	Title string
	Image string
}

// Submission is a registration that passed validation.
type Submission struct {
	Name      string
	Email     string
	Whatsapp  string
	Latitude  float64
	Longitude float64
	City      string
	UF        string
	// ItemIDs holds distinct positive ids in first-seen order, never empty.
	ItemIDs []int64
	Photo   *Photo
}

// Photo is an uploaded image awaiting storage.
type Photo struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// NewPoint is the row written for a submission once its photo is stored.
type NewPoint struct {
	Name      string
	Email     string
	Whatsapp  string
	Latitude  float64
	Longitude float64
	City      string
	UF        string
	Image     string
	ItemIDs   []int64
}

// ToNewPoint pairs the submission with the stored photo filename.
func (s *Submission) ToNewPoint(image string) *NewPoint {
	return &NewPoint{
		Name:      s.Name,
		Email:     s.Email,
		Whatsapp:  s.Whatsapp,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		City:      s.City,
		UF:        s.UF,
		Image:     image,
		ItemIDs:   s.ItemIDs,
	}
}

// Filter narrows a point listing. Zero values match everything; ItemIDs
// matches points accepting any of the listed items.
type Filter struct {
	City    string
	UF      string
	ItemIDs []int64
}
