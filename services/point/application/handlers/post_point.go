package handlers

import (
	"errors"
	"net/http"

	"github.com/ecoleta/ecoleta/pkg/errhttp"
	"github.com/ecoleta/ecoleta/pkg/httpx"
	"github.com/ecoleta/ecoleta/pkg/media"
	appsvcs "github.com/ecoleta/ecoleta/services/point/application/services"
	"github.com/ecoleta/ecoleta/services/point/application/serializers"
	"github.com/ecoleta/ecoleta/services/point/domain/models"
)

const (
	// PhotoField is the multipart file field carrying the optional photo.
	PhotoField = "image"

	multipartMemory = 1 << 20
)

// PostPointHandler handles POST /points.
type PostPointHandler struct {
	svc  *appsvcs.Services
	urls media.URLBuilder
}

// NewPostPointHandler returns a PostPointHandler backed by the given services.
func NewPostPointHandler(svc *appsvcs.Services, urls media.URLBuilder) *PostPointHandler {
	return &PostPointHandler{svc: svc, urls: urls}
}

// Execute registers a new collection point.
//
//	@Summary		Register point
//	@Description	Registers a collection point with the items it accepts and an optional photo
//	@Tags			points
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string	true	"Point name"
//	@Param			email		formData	string	true	"Contact email"
//	@Param			whatsapp	formData	string	true	"WhatsApp number"
//	@Param			latitude	formData	number	true	"Latitude"
//	@Param			longitude	formData	number	true	"Longitude"
//	@Param			city		formData	string	true	"City"
//	@Param			uf			formData	string	true	"Two-letter state code"
//	@Param			items		formData	string	true	"Comma-separated item ids"
//	@Param			image		formData	file	false	"Photo"
//	@Success		201			{object}	serializers.PointResponse
//	@Failure		400			{object}	httpx.ValidationErrorResponse
//	@Failure		413			{object}	httpx.ErrorResponse
//	@Failure		500			{object}	httpx.ErrorResponse
//	@Router			/points [post]
func (h *PostPointHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll() //nolint:errcheck
	}

	form := appsvcs.SubmissionForm{
		Name:      r.PostFormValue("name"),
		Email:     r.PostFormValue("email"),
		Whatsapp:  r.PostFormValue("whatsapp"),
		Latitude:  r.PostFormValue("latitude"),
		Longitude: r.PostFormValue("longitude"),
		City:      r.PostFormValue("city"),
		UF:        r.PostFormValue("uf"),
		Items:     r.PostFormValue("items"),
	}

	var photo *models.Photo
	if r.MultipartForm != nil {
		if headers := r.MultipartForm.File[PhotoField]; len(headers) > 0 {
			file, err := headers[0].Open()
			if err != nil {
				httpx.JSONViolations(w, []httpx.Violation{{Field: PhotoField, Message: "Could not read the uploaded file"}})
				return
			}
			defer file.Close() //nolint:errcheck
			photo = &models.Photo{Filename: headers[0].Filename, Size: headers[0].Size, Content: file}
		}
	}

	point, err := h.svc.Registration.Register(r.Context(), form, photo)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, serializers.Point(point, h.urls))
}
