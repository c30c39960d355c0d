package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ecoleta/ecoleta/pkg/logger"
	pointdomain "github.com/ecoleta/ecoleta/services/point/domain"
	"github.com/ecoleta/ecoleta/services/point/domain/models"
)

func storedPoint(np *models.NewPoint) *models.Point {
	items := make([]models.AcceptedItem, len(np.ItemIDs))
	for i, id := range np.ItemIDs {
		items[i] = models.AcceptedItem{ID: id, Title: "item", Image: "item.svg"}
	}
	return &models.Point{
		ID: 1, Name: np.Name, Email: np.Email, Whatsapp: np.Whatsapp,
		Latitude: np.Latitude, Longitude: np.Longitude,
		City: np.City, UF: np.UF, Image: np.Image, Items: items,
	}
}

func TestRegister_EcoCenterWithoutPhoto(t *testing.T) {
	repo := new(mockRepo)
	photos := new(mockPhotos)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(np *models.NewPoint) bool {
		return np.Image == "" && len(np.ItemIDs) == 2 && np.ItemIDs[0] == 1 && np.ItemIDs[1] == 2
	})).Return(func(_ context.Context, np *models.NewPoint) *models.Point {
		return storedPoint(np)
	}, nil)

	svc := NewRegistrationService(repo, photos, logger.Discard(), nil)
	p, err := svc.Register(context.Background(), ecoCenterForm(), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, []int64{1, 2}, p.ItemIDs())
	assert.False(t, p.HasPhoto())
	photos.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestRegister_StoresPhotoBeforeWrite(t *testing.T) {
	repo := new(mockRepo)
	photos := new(mockPhotos)
	content := strings.NewReader("jpeg bytes")

	photos.On("Save", mock.Anything, "front door.jpg", content).Return("uuid-front-door.jpg", nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(np *models.NewPoint) bool {
		return np.Image == "uuid-front-door.jpg"
	})).Return(func(_ context.Context, np *models.NewPoint) *models.Point {
		return storedPoint(np)
	}, nil)

	svc := NewRegistrationService(repo, photos, logger.Discard(), nil)
	p, err := svc.Register(context.Background(), ecoCenterForm(),
		&models.Photo{Filename: "front door.jpg", Size: 10, Content: content})
	require.NoError(t, err)
	assert.Equal(t, "uuid-front-door.jpg", p.Image)
	photos.AssertExpectations(t)
}

func TestRegister_ValidationStopsBeforeSideEffects(t *testing.T) {
	repo := new(mockRepo)
	photos := new(mockPhotos)
	form := ecoCenterForm()
	form.UF = "SPX"

	svc := NewRegistrationService(repo, photos, logger.Discard(), nil)
	_, err := svc.Register(context.Background(), form,
		&models.Photo{Filename: "a.jpg", Content: strings.NewReader("x")})

	require.ErrorIs(t, err, pointdomain.ErrInvalidSubmission)
	photos.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_PhotoStorageFailureWritesNothing(t *testing.T) {
	repo := new(mockRepo)
	photos := new(mockPhotos)
	photos.On("Save", mock.Anything, "a.jpg", mock.Anything).Return("", errors.New("disk full"))

	svc := NewRegistrationService(repo, photos, logger.Discard(), nil)
	_, err := svc.Register(context.Background(), ecoCenterForm(),
		&models.Photo{Filename: "a.jpg", Content: strings.NewReader("x")})

	require.ErrorIs(t, err, pointdomain.ErrPhotoStorage)
	assert.Contains(t, err.Error(), "disk full")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_NoPhotoStoreConfigured(t *testing.T) {
	repo := new(mockRepo)

	svc := NewRegistrationService(repo, nil, logger.Discard(), nil)
	_, err := svc.Register(context.Background(), ecoCenterForm(),
		&models.Photo{Filename: "a.jpg", Content: strings.NewReader("x")})

	require.ErrorIs(t, err, pointdomain.ErrPhotoStorage)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_UnknownItemLogsOrphanedPhoto(t *testing.T) {
	repo := new(mockRepo)
	photos := new(mockPhotos)
	photos.On("Save", mock.Anything, "a.jpg", mock.Anything).Return("uuid-a.jpg", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, &pointdomain.UnknownItemsError{IDs: []int64{2}})

	var buf bytes.Buffer
	svc := NewRegistrationService(repo, photos, logger.NewWithWriter(&buf, "info"), nil)
	_, err := svc.Register(context.Background(), ecoCenterForm(),
		&models.Photo{Filename: "a.jpg", Content: strings.NewReader("x")})

	require.ErrorIs(t, err, pointdomain.ErrUnknownItem)
	var ue *pointdomain.UnknownItemsError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, []int64{2}, ue.IDs)

	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), "uuid-a.jpg")
}

func TestRegister_StoreUnavailable(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewRegistrationService(repo, new(mockPhotos), logger.Discard(), nil)
	_, err := svc.Register(context.Background(), ecoCenterForm(), nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, pointdomain.ErrInvalidSubmission)
	assert.NotErrorIs(t, err, pointdomain.ErrUnknownItem)
}
