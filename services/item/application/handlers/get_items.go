package handlers

import (
	"net/http"

	"github.com/ecoleta/ecoleta/pkg/errhttp"
	"github.com/ecoleta/ecoleta/pkg/httpx"
	"github.com/ecoleta/ecoleta/pkg/media"
	appsvcs "github.com/ecoleta/ecoleta/services/item/application/services"
	"github.com/ecoleta/ecoleta/services/item/application/serializers"
)

// GetItemsHandler handles GET /items.
type GetItemsHandler struct {
	svc  *appsvcs.Services
	urls media.URLBuilder
}

// NewGetItemsHandler returns a GetItemsHandler backed by the given services.
func NewGetItemsHandler(svc *appsvcs.Services, urls media.URLBuilder) *GetItemsHandler {
	return &GetItemsHandler{svc: svc, urls: urls}
}

// Execute lists the item catalog.
//
//	@Summary		List items
//	@Description	Returns every item category ordered by id
//	@Tags			items
//	@Produce		json
//	@Success		200	{array}		serializers.ItemResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/items [get]
func (h *GetItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Catalog.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serializers.Items(items, h.urls))
}
