package eventpublisher

import (
	"context"

	eventv1 "github.com/muhammadchandra19/matchbook/internal/domain/event/v1"
)

// Multi publishes to every publisher in order and stops at the first error.
type Multi []eventv1.Publisher

var _ eventv1.Publisher = Multi(nil)

// PublishEvents implements eventv1.Publisher.
func (m Multi) PublishEvents(ctx context.Context, payloads []*eventv1.Payload) error {
	for _, p := range m {
		if err := p.PublishEvents(ctx, payloads); err != nil {
			return err
		}
	}
	return nil
}
