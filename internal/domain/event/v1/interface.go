package eventv1

import "context"

// Publisher defines the interface for publishing book events.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=eventv1_mock
type Publisher interface {
	// PublishEvents publishes the events of one command, in order.
	PublishEvents(ctx context.Context, payloads []*Payload) error
}
