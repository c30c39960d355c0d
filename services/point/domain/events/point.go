package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicPointCreated is the Watermill topic published when a Point is stored.
const TopicPointCreated = "point.created"

// PointCreatedEvent is published in the registration transaction.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicPointCreated).
type PointCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	PointID    int64     `json:"point_id"`
	City       string    `json:"city"`
	UF         string    `json:"uf"`
	ItemIDs    []int64   `json:"item_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}
