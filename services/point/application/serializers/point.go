// Package serializers maps point models to their JSON representation. All
// functions are pure: media URLs are derived from the configured base only.
package serializers

import (
	"github.com/ecoleta/ecoleta/pkg/media"
	"github.com/ecoleta/ecoleta/services/point/domain/models"
)

// PointResponse is the serialized Point. ImageURL is null without a photo.
type PointResponse struct {
	ID        int64          `json:"id"        example:"1"`
	Name      string         `json:"name"      example:"Eco Center"`
	Email     string         `json:"email"     example:"contato@eco.com"`
	Whatsapp  string         `json:"whatsapp"  example:"5511999999999"`
	Latitude  float64        `json:"latitude"  example:"-23.5505"`
	Longitude float64        `json:"longitude" example:"-46.6333"`
	City      string         `json:"city"      example:"São Paulo"`
	UF        string         `json:"uf"        example:"SP"`
	ImageURL  *string        `json:"image_url" example:"http://localhost:3333/uploads/3f1c-front.jpg"`
	Items     []ItemResponse `json:"items"`
} // @name PointResponse

// ItemResponse is an accepted item inside a PointResponse.
type ItemResponse struct {
	ID       int64  `json:"id"        example:"1"`
	Title    string `json:"title"     example:"Lâmpadas"`
	ImageURL string `json:"image_url" example:"http://localhost:3333/uploads/lampadas.svg"`
} // @name PointItemResponse

// Point serializes p with its items.
func Point(p *models.Point, urls media.URLBuilder) PointResponse {
	items := make([]ItemResponse, len(p.Items))
	for i, it := range p.Items {
		items[i] = ItemResponse{ID: it.ID, Title: it.Title, ImageURL: urls.URL(it.Image)}
	}
	return PointResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Whatsapp:  p.Whatsapp,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		City:      p.City,
		UF:        p.UF,
		ImageURL:  urls.OptionalURL(p.Image),
		Items:     items,
	}
}

// Points serializes a listing. An empty input yields an empty, non-nil slice.
func Points(points []*models.Point, urls media.URLBuilder) []PointResponse {
	out := make([]PointResponse, len(points))
	for i, p := range points {
		out[i] = Point(p, urls)
	}
	return out
}
