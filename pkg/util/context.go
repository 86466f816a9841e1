package util

import (
	"context"
)

type key string

const (
	pairKey          = key("pair")
	commandOffsetKey = key("command-offset")
)

// WithPair returns a context carrying the instrument the book trades.
func WithPair(ctx context.Context, pair string) context.Context {
	return context.WithValue(ctx, pairKey, pair)
}

// GetPair returns the pair from context
// will return empty string if not present
func GetPair(ctx context.Context) string {
	pair, _ := ctx.Value(pairKey).(string)
	return pair
}

// WithCommandOffset returns a context carrying the stream offset of the command being applied.
func WithCommandOffset(ctx context.Context, offset int64) context.Context {
	return context.WithValue(ctx, commandOffsetKey, offset)
}

// GetCommandOffset returns the command offset from context
// will return -1 if not present
func GetCommandOffset(ctx context.Context) int64 {
	offset, ok := ctx.Value(commandOffsetKey).(int64)
	if !ok {
		return -1
	}
	return offset
}
