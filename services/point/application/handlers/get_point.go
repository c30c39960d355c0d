package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ecoleta/ecoleta/pkg/errhttp"
	"github.com/ecoleta/ecoleta/pkg/httpx"
	"github.com/ecoleta/ecoleta/pkg/media"
	appsvcs "github.com/ecoleta/ecoleta/services/point/application/services"
	"github.com/ecoleta/ecoleta/services/point/application/serializers"
)

// GetPointHandler handles GET /points/{id}.
type GetPointHandler struct {
	svc  *appsvcs.Services
	urls media.URLBuilder
}

// NewGetPointHandler returns a GetPointHandler backed by the given services.
func NewGetPointHandler(svc *appsvcs.Services, urls media.URLBuilder) *GetPointHandler {
	return &GetPointHandler{svc: svc, urls: urls}
}

// Execute returns one point with its items.
//
//	@Summary		Show point
//	@Description	Returns a collection point and the items it accepts
//	@Tags			points
//	@Produce		json
//	@Param			id	path		int	true	"Point id"
//	@Success		200	{object}	serializers.PointResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/points/{id} [get]
func (h *GetPointHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		errhttp.NotFound(w)
		return
	}

	point, err := h.svc.Point.Show(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, serializers.Point(point, h.urls))
}
