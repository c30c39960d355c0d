package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgvalidator "github.com/ecoleta/ecoleta/pkg/validator"
	pointdomain "github.com/ecoleta/ecoleta/services/point/domain"
	"github.com/ecoleta/ecoleta/services/point/domain/models"
)

// SubmissionForm is the raw multipart registration form. Every field arrives
// as text; ParseSubmission validates and converts it.
type SubmissionForm struct {
	Name      string `form:"name"      validate:"required"               example:"Eco Center"`
	Email     string `form:"email"     validate:"required,email"         example:"contato@eco.com"`
	Whatsapp  string `form:"whatsapp"  validate:"required"               example:"5511999999999"`
	Latitude  string `form:"latitude"  validate:"required,latitude"      example:"-23.5505"`
	Longitude string `form:"longitude" validate:"required,longitude"     example:"-46.6333"`
	City      string `form:"city"      validate:"required"               example:"São Paulo"`
	UF        string `form:"uf"        validate:"required,max=2"         example:"SP"`
	Items     string `form:"items"     validate:"required,item_ids"      example:"1,2,6"`
}

// FormFields lists the multipart field names in form order.
var FormFields = []string{"name", "email", "whatsapp", "latitude", "longitude", "city", "uf", "items"}

const itemIDsTag = "item_ids"

func init() {
	if err := pkgvalidator.RegisterValidation(itemIDsTag, validItemIDs,
		"Must list at least one item id, separated by commas"); err != nil {
		panic(err)
	}
}

func validItemIDs(fl validator.FieldLevel) bool {
	_, err := models.ParseItemIDs(fl.Field().String())
	return err == nil
}

// ParseSubmission validates form and converts it into a Submission carrying
// photo. All violations are reported together as a *domain.ValidationError.
func ParseSubmission(form SubmissionForm, photo *models.Photo) (*models.Submission, error) {
	form = trimForm(form)

	fieldErrs, err := pkgvalidator.Check(form)
	if err != nil {
		return nil, fmt.Errorf("validate submission: %w", err)
	}
	if len(fieldErrs) > 0 {
		violations := make([]pointdomain.Violation, len(fieldErrs))
		for i, fe := range fieldErrs {
			violations[i] = pointdomain.Violation{Field: fe.Field, Message: fe.Message}
		}
		return nil, pointdomain.NewValidationError(violations...)
	}

	var violations []pointdomain.Violation
	lat, err := strconv.ParseFloat(form.Latitude, 64)
	if err != nil {
		violations = append(violations, pointdomain.Violation{Field: "latitude", Message: "Must be a numeric value"})
	}
	lon, err := strconv.ParseFloat(form.Longitude, 64)
	if err != nil {
		violations = append(violations, pointdomain.Violation{Field: "longitude", Message: "Must be a numeric value"})
	}
	ids, err := models.ParseItemIDs(form.Items)
	if err != nil {
		violations = append(violations, pointdomain.Violation{Field: "items", Message: err.Error()})
	}
	if len(violations) > 0 {
		return nil, pointdomain.NewValidationError(violations...)
	}

	return &models.Submission{
		Name:      form.Name,
		Email:     form.Email,
		Whatsapp:  form.Whatsapp,
		Latitude:  lat,
		Longitude: lon,
		City:      form.City,
		UF:        form.UF,
		ItemIDs:   ids,
		Photo:     photo,
	}, nil
}

func trimForm(f SubmissionForm) SubmissionForm {
	return SubmissionForm{
		Name:      strings.TrimSpace(f.Name),
		Email:     strings.TrimSpace(f.Email),
		Whatsapp:  strings.TrimSpace(f.Whatsapp),
		Latitude:  strings.TrimSpace(f.Latitude),
		Longitude: strings.TrimSpace(f.Longitude),
		City:      strings.TrimSpace(f.City),
		UF:        strings.TrimSpace(f.UF),
		Items:     strings.TrimSpace(f.Items),
	}
}
