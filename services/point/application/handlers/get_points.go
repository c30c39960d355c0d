package handlers

import (
	"net/http"
	"strings"

	"github.com/ecoleta/ecoleta/pkg/errhttp"
	"github.com/ecoleta/ecoleta/pkg/httpx"
	"github.com/ecoleta/ecoleta/pkg/media"
	appsvcs "github.com/ecoleta/ecoleta/services/point/application/services"
	"github.com/ecoleta/ecoleta/services/point/application/serializers"
	"github.com/ecoleta/ecoleta/services/point/domain/models"
)

// GetPointsHandler handles GET /points.
type GetPointsHandler struct {
	svc  *appsvcs.Services
	urls media.URLBuilder
}

// NewGetPointsHandler returns a GetPointsHandler backed by the given services.
func NewGetPointsHandler(svc *appsvcs.Services, urls media.URLBuilder) *GetPointsHandler {
	return &GetPointsHandler{svc: svc, urls: urls}
}

// Execute lists points, optionally filtered by city, uf and accepted items.
//
//	@Summary		List points
//	@Description	Lists collection points. items matches points accepting any of the listed ids.
//	@Tags			points
//	@Produce		json
//	@Param			city	query		string	false	"City"
//	@Param			uf		query		string	false	"Two-letter state code"
//	@Param			items	query		string	false	"Comma-separated item ids"
//	@Success		200		{array}		serializers.PointResponse
//	@Failure		400		{object}	httpx.ValidationErrorResponse
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/points [get]
func (h *GetPointsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.Filter{
		City: strings.TrimSpace(q.Get("city")),
		UF:   strings.TrimSpace(q.Get("uf")),
	}
	if raw := strings.TrimSpace(q.Get("items")); raw != "" {
		ids, err := models.ParseItemIDs(raw)
		if err != nil {
			httpx.JSONViolations(w, []httpx.Violation{{Field: "items", Message: err.Error()}})
			return
		}
		filter.ItemIDs = ids
	}

	points, err := h.svc.Point.List(r.Context(), filter)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, serializers.Points(points, h.urls))
}
