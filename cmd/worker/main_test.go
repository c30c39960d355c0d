package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ecoleta/ecoleta/pkg/logger"
	pointDomain "github.com/ecoleta/ecoleta/services/point/domain"
	pointEvents "github.com/ecoleta/ecoleta/services/point/domain/events"
)

type fakeWarmer struct {
	ids []int64
	err error
}

func (f *fakeWarmer) Warm(_ context.Context, id int64) error {
	f.ids = append(f.ids, id)
	return f.err
}

func eventMessage(t *testing.T, evt pointEvents.PointCreatedEvent) *message.Message {
	t.Helper()
	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return message.NewMessage("uuid", data)
}

func TestHandlePointCreated_WarmsCache(t *testing.T) {
	w := &fakeWarmer{}
	h := handlePointCreated(logger.Discard(), w)

	if err := h(context.Background(), eventMessage(t, pointEvents.PointCreatedEvent{PointID: 42})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.ids) != 1 || w.ids[0] != 42 {
		t.Fatalf("expected warm of point 42, got %v", w.ids)
	}
}

func TestHandlePointCreated_WarmFailureIsRetried(t *testing.T) {
	w := &fakeWarmer{err: errors.New("redis down")}
	h := handlePointCreated(logger.Discard(), w)

	if err := h(context.Background(), eventMessage(t, pointEvents.PointCreatedEvent{PointID: 1})); err == nil {
		t.Fatal("expected error so the bus retries")
	}
}

func TestHandlePointCreated_MalformedPayloadDropped(t *testing.T) {
	w := &fakeWarmer{}
	h := handlePointCreated(logger.Discard(), w)

	if err := h(context.Background(), message.NewMessage("uuid", []byte("{not json"))); err != nil {
		t.Fatalf("expected malformed payload to be dropped, got %v", err)
	}
	if len(w.ids) != 0 {
		t.Fatalf("expected no warm call, got %v", w.ids)
	}
}

func TestHandlePointCreated_MissingPointDropped(t *testing.T) {
	w := &fakeWarmer{err: fmt.Errorf("warm point 3: %w", pointDomain.ErrPointNotFound)}
	h := handlePointCreated(logger.Discard(), w)

	if err := h(context.Background(), eventMessage(t, pointEvents.PointCreatedEvent{PointID: 3})); err != nil {
		t.Fatalf("expected missing point to be dropped, got %v", err)
	}
}
