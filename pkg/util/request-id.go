package util

import (
	"context"

	"github.com/google/uuid"
)

const (
	requestIDKey = key("x-request-id")
)

// WithRequestID returns a context with a request id.
// It will generate new request id if the provided id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return context.WithValue(ctx, requestIDKey, generate())
	}

	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns a request id from ctx if available
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// generate returns a uuid-v4 string to use as request id
func generate() string {
	return uuid.NewString()
}
