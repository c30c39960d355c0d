package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pointdomain "github.com/ecoleta/ecoleta/services/point/domain"
	"github.com/ecoleta/ecoleta/services/point/domain/models"
)

func ecoCenterForm() SubmissionForm {
	return SubmissionForm{
		Name:      "Eco Center",
		Email:     "a@b.com",
		Whatsapp:  "555",
		Latitude:  "10",
		Longitude: "20",
		City:      "X",
		UF:        "SP",
		Items:     "1,2,2",
	}
}

func violationsOf(t *testing.T, err error) *pointdomain.ValidationError {
	t.Helper()
	var ve *pointdomain.ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %v", err)
	return ve
}

func TestParseSubmission_EcoCenter(t *testing.T) {
	sub, err := ParseSubmission(ecoCenterForm(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Eco Center", sub.Name)
	assert.Equal(t, 10.0, sub.Latitude)
	assert.Equal(t, 20.0, sub.Longitude)
	assert.Equal(t, []int64{1, 2}, sub.ItemIDs)
	assert.Nil(t, sub.Photo)
}

func TestParseSubmission_TrimsAndKeepsPhoto(t *testing.T) {
	form := ecoCenterForm()
	form.Name = "  Eco Center  "
	form.UF = " SP "
	photo := &models.Photo{Filename: "front.jpg", Content: strings.NewReader("img")}

	sub, err := ParseSubmission(form, photo)
	require.NoError(t, err)
	assert.Equal(t, "Eco Center", sub.Name)
	assert.Equal(t, "SP", sub.UF)
	assert.Same(t, photo, sub.Photo)
}

func TestParseSubmission_UFTooLong(t *testing.T) {
	form := ecoCenterForm()
	form.UF = "SPX"

	_, err := ParseSubmission(form, nil)
	require.ErrorIs(t, err, pointdomain.ErrInvalidSubmission)

	ve := violationsOf(t, err)
	assert.Equal(t, []string{"uf"}, ve.Fields())
	assert.Equal(t, "Maximum length is 2", ve.Violations[0].Message)
}

func TestParseSubmission_CollectsAllViolations(t *testing.T) {
	form := SubmissionForm{
		Email:     "not-an-email",
		Latitude:  "abc",
		Longitude: "200",
		UF:        "SPX",
		Items:     "",
	}

	_, err := ParseSubmission(form, nil)
	ve := violationsOf(t, err)
	assert.Equal(t,
		[]string{"name", "email", "whatsapp", "latitude", "longitude", "city", "uf", "items"},
		ve.Fields(),
	)
}

func TestParseSubmission_Items(t *testing.T) {
	tests := []struct {
		name  string
		items string
	}{
		{"empty", ""},
		{"only commas", ", ,"},
		{"non numeric", "1,abc"},
		{"zero", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := ecoCenterForm()
			form.Items = tt.items

			_, err := ParseSubmission(form, nil)
			ve := violationsOf(t, err)
			assert.Equal(t, []string{"items"}, ve.Fields())
		})
	}
}

func TestParseSubmission_BlankRequiredField(t *testing.T) {
	form := ecoCenterForm()
	form.City = "   "

	_, err := ParseSubmission(form, nil)
	ve := violationsOf(t, err)
	assert.Equal(t, []string{"city"}, ve.Fields())
	assert.Equal(t, "This field is required", ve.Violations[0].Message)
}

func TestParseSubmission_CoordinateRange(t *testing.T) {
	form := ecoCenterForm()
	form.Latitude = "-91"
	form.Longitude = "181"

	_, err := ParseSubmission(form, nil)
	ve := violationsOf(t, err)
	assert.Equal(t, []string{"latitude", "longitude"}, ve.Fields())
}
