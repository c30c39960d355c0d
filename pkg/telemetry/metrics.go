package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Rejection reasons reported by RegistrationMetrics.
const (
	ReasonValidation   = "validation"
	ReasonUnknownItems = "unknown_items"
	ReasonStorage      = "storage"
	ReasonInternal     = "internal"
)

// RegistrationMetrics counts point registrations and their outcomes.
type RegistrationMetrics struct {
	registered metric.Int64Counter
	rejected   metric.Int64Counter
	photoBytes metric.Int64Histogram
}

// NewRegistrationMetrics creates the instruments on the global meter provider.
// Call it after Setup so they are exported.
func NewRegistrationMetrics() (*RegistrationMetrics, error) {
	return NewRegistrationMetricsFrom(otel.Meter("github.com/ecoleta/ecoleta/registration"))
}

// NewRegistrationMetricsFrom creates the instruments on meter.
func NewRegistrationMetricsFrom(meter metric.Meter) (*RegistrationMetrics, error) {
	registered, err := meter.Int64Counter("ecoleta.points.registered",
		metric.WithDescription("Collection points stored"),
	)
	if err != nil {
		return nil, fmt.Errorf("registered counter: %w", err)
	}
	rejected, err := meter.Int64Counter("ecoleta.points.rejected",
		metric.WithDescription("Registration submissions that were not stored"),
	)
	if err != nil {
		return nil, fmt.Errorf("rejected counter: %w", err)
	}
	photoBytes, err := meter.Int64Histogram("ecoleta.points.photo_size",
		metric.WithDescription("Size of uploaded point photos"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("photo size histogram: %w", err)
	}
	return &RegistrationMetrics{registered: registered, rejected: rejected, photoBytes: photoBytes}, nil
}

// Registered records a stored point accepting itemCount items.
func (m *RegistrationMetrics) Registered(ctx context.Context, uf string, itemCount int) {
	if m == nil {
		return
	}
	m.registered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("uf", uf),
		attribute.Int("items", itemCount),
	))
}

// Rejected records a submission that failed for reason.
func (m *RegistrationMetrics) Rejected(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// PhotoStored records the size of a persisted photo.
func (m *RegistrationMetrics) PhotoStored(ctx context.Context, size int64) {
	if m == nil {
		return
	}
	m.photoBytes.Record(ctx, size)
}
