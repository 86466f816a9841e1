package util

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestID(t *testing.T) {
	t.Run("keeps provided id", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-1")
		assert.Equal(t, "req-1", GetRequestID(ctx))
	})

	t.Run("generates uuid when empty", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "")
		_, err := uuid.Parse(GetRequestID(ctx))
		require.NoError(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
	})
}

func TestPairAndOffset(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetPair(ctx))
	assert.Equal(t, int64(-1), GetCommandOffset(ctx))

	ctx = WithCommandOffset(WithPair(ctx, "BTC-USD"), 42)
	assert.Equal(t, "BTC-USD", GetPair(ctx))
	assert.Equal(t, int64(42), GetCommandOffset(ctx))
}
