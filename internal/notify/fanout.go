package notify

import (
	"context"
	"errors"

	"smartpark/internal/data/entity"
)

type Publisher interface {
	Publish(ctx context.Context, event entity.BookingEvent) error
}

// Fanout delivers each event to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event entity.BookingEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
