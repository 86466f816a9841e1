package eventv1

import (
	"testing"
	"time"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFromEvent(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	event := orderbookv1.Event{
		Type:              orderbookv1.EventTypeMatch,
		OrderID:           "S1",
		IncomingOrderID:   "B1",
		Side:              orderbookv1.SideBuy,
		Price:             100,
		Quantity:          5,
		RemainingQuantity: 5,
	}

	payload := CreateFromEvent("BTC-USD", 7, 42, event, ts)

	id, err := ulid.Parse(payload.EventID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(ts), id.Time())
	assert.Equal(t, "BTC-USD", payload.Pair)
	assert.Equal(t, int64(7), payload.Sequence)
	assert.Equal(t, int64(42), payload.CommandOffset)
	assert.Equal(t, ts, payload.Timestamp)
	assert.Equal(t, event, payload.Event())

	other := CreateFromEvent("BTC-USD", 8, 42, event, ts)
	assert.NotEqual(t, payload.EventID, other.EventID)
}

func TestBytes(t *testing.T) {
	payload := CreateFromEvent("ETH-USD", 1, 0, orderbookv1.Event{Type: orderbookv1.EventTypeAdd, OrderID: "B1", Side: orderbookv1.SideBuy, Price: 10, Quantity: 3}, time.Unix(1700000000, 0))

	decoded := FromBytes(ToBytes(payload))

	require.NotNil(t, decoded)
	assert.Equal(t, payload.EventID, decoded.EventID)
	assert.Equal(t, payload.Event(), decoded.Event())
	assert.True(t, payload.Timestamp.Equal(decoded.Timestamp))
	assert.Nil(t, FromBytes([]byte("not json")))
}
