package usecase

import (
	"context"

	"smartpark/internal/data/entity"
)

// EventPublisher receives booking transitions after they are persisted. Delivery is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.BookingEvent) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, entity.BookingEvent) error { return nil }
