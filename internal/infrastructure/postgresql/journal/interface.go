package journal

import (
	"context"

	eventv1 "github.com/muhammadchandra19/matchbook/internal/domain/event/v1"
)

// Journal is an append-only store of published book events.
type Journal interface {
	eventv1.Publisher

	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, payloads []*eventv1.Payload) error
	LastSequence(ctx context.Context, pair string) (int64, error)
}
