package serializers

import (
	"github.com/ecoleta/ecoleta/pkg/media"
	"github.com/ecoleta/ecoleta/services/item/domain/models"
)

// ItemResponse is a catalog entry with its icon URL.
type ItemResponse struct {
	ID       int64  `json:"id"        example:"1"`
	Title    string `json:"title"     example:"Lâmpadas"`
	ImageURL string `json:"image_url" example:"http://localhost:3333/uploads/lampadas.svg"`
} // @name ItemResponse

// Items serializes the catalog in the given order. An empty catalog yields
// an empty, non-nil slice.
func Items(items []*models.Item, urls media.URLBuilder) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = ItemResponse{ID: it.ID, Title: it.Title.String(), ImageURL: urls.URL(it.Image)}
	}
	return out
}
