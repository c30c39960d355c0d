package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ecoleta/ecoleta/pkg/logger"
	"github.com/ecoleta/ecoleta/pkg/telemetry"
	pointdomain "github.com/ecoleta/ecoleta/services/point/domain"
	"github.com/ecoleta/ecoleta/services/point/domain/models"
	"github.com/ecoleta/ecoleta/services/point/domain/repositories"
)

// PhotoStore persists uploaded photos and returns the stored filename.
type PhotoStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}

// RegistrationService validates submissions, stores their photo and writes
// the point through the repository. Event publishing is handled by the
// repository inside the write transaction.
type RegistrationService struct {
	repo    repositories.PointRepository
	photos  PhotoStore
	log     logger.Logger
	metrics *telemetry.RegistrationMetrics
}

// NewRegistrationService wires the service. metrics may be nil.
func NewRegistrationService(repo repositories.PointRepository, photos PhotoStore, log logger.Logger, metrics *telemetry.RegistrationMetrics) *RegistrationService {
	return &RegistrationService{repo: repo, photos: photos, log: log, metrics: metrics}
}

// Register validates form, stores photo when present and creates the point.
//
// Errors: *domain.ValidationError for bad fields, domain.ErrPhotoStorage
// when the photo cannot be written (nothing is persisted), and
// *domain.UnknownItemsError when an item id is not in the catalog.
func (s *RegistrationService) Register(ctx context.Context, form SubmissionForm, photo *models.Photo) (*models.Point, error) {
	sub, err := ParseSubmission(form, photo)
	if err != nil {
		s.metrics.Rejected(ctx, telemetry.ReasonValidation)
		return nil, err
	}

	var image string
	if sub.Photo != nil {
		if s.photos == nil {
			s.metrics.Rejected(ctx, telemetry.ReasonStorage)
			return nil, fmt.Errorf("%w: no photo store configured", pointdomain.ErrPhotoStorage)
		}
		image, err = s.photos.Save(ctx, sub.Photo.Filename, sub.Photo.Content)
		if err != nil {
			s.metrics.Rejected(ctx, telemetry.ReasonStorage)
			return nil, fmt.Errorf("%w: %w", pointdomain.ErrPhotoStorage, err)
		}
		s.metrics.PhotoStored(ctx, sub.Photo.Size)
	}

	point, err := s.repo.Create(ctx, sub.ToNewPoint(image))
	if err != nil {
		if image != "" {
			s.log.WarnContext(ctx, "orphaned photo after failed registration",
				"filename", image,
				"error", err,
			)
		}
		if errors.Is(err, pointdomain.ErrUnknownItem) {
			s.metrics.Rejected(ctx, telemetry.ReasonUnknownItems)
		} else {
			s.metrics.Rejected(ctx, telemetry.ReasonInternal)
		}
		return nil, fmt.Errorf("register point: %w", err)
	}

	s.metrics.Registered(ctx, point.UF, len(point.Items))
	s.log.InfoContext(ctx, "point registered",
		"point_id", point.ID,
		"items", len(point.Items),
		"has_photo", point.HasPhoto(),
	)
	return point, nil
}
