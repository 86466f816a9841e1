package orderbook

import (
	"testing"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/matchbook/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderbook_CreateSnapshot(t *testing.T) {
	ob, _ := newTestOrderbook()
	ob.Enter("B1", buy, 98, 3)
	ob.Enter("B2", buy, 99, 4)
	ob.Enter("B3", buy, 99, 5)
	ob.Enter("S1", sell, 102, 6)
	ob.Enter("S2", sell, 101, 7)

	snapshot := ob.CreateSnapshot()

	assert.Equal(t, []snapshotv1.BookOrder{
		{OrderID: "B2", Bid: true, Price: 99, Size: 4},
		{OrderID: "B3", Bid: true, Price: 99, Size: 5},
		{OrderID: "B1", Bid: true, Price: 98, Size: 3},
		{OrderID: "S2", Bid: false, Price: 101, Size: 7},
		{OrderID: "S1", Bid: false, Price: 102, Size: 6},
	}, snapshot.OrderBookSnapshot.Orders)
}

func TestOrderbook_RestoreRoundTrip(t *testing.T) {
	source, _ := newTestOrderbook()
	source.Enter("B1", buy, 98, 3)
	source.Enter("B2", buy, 98, 4)
	source.Enter("S1", sell, 100, 6)
	source.Cancel("B1", 1)

	target, events := newTestOrderbook()
	target.Enter("stale", sell, 50, 1)
	events.Reset()

	require.NoError(t, target.RestoreOrderbook(source.CreateSnapshot()))

	assert.Equal(t, 0, events.Len())
	assert.Equal(t, source.Bids(), target.Bids())
	assert.Equal(t, source.Asks(), target.Asks())
	_, ok := target.Order("stale")
	assert.False(t, ok)

	// FIFO survives the round trip
	target.Enter("S9", sell, 98, 2)
	assert.Equal(t, []orderbookv1.Event{
		matchEvent("B1", "S9", sell, 98, 1, 0),
		matchEvent("B2", "S9", sell, 98, 1, 3),
	}, events.Events())
}

func TestOrderbook_RestoreErrors(t *testing.T) {
	testCases := []struct {
		name     string
		snapshot *snapshotv1.Snapshot
		code     errors.ErrorCode
	}{
		{
			name:     "nil snapshot",
			snapshot: nil,
			code:     errors.SnapshotInvalidOrderError,
		},
		{
			name: "duplicate order",
			snapshot: &snapshotv1.Snapshot{OrderBookSnapshot: snapshotv1.OrderBookSnapshot{Orders: []snapshotv1.BookOrder{
				{OrderID: "B1", Bid: true, Price: 99, Size: 1},
				{OrderID: "B1", Bid: true, Price: 98, Size: 1},
			}}},
			code: errors.SnapshotDuplicateOrderError,
		},
		{
			name: "zero size",
			snapshot: &snapshotv1.Snapshot{OrderBookSnapshot: snapshotv1.OrderBookSnapshot{Orders: []snapshotv1.BookOrder{
				{OrderID: "B1", Bid: true, Price: 99, Size: 0},
			}}},
			code: errors.SnapshotInvalidOrderError,
		},
		{
			name: "empty id",
			snapshot: &snapshotv1.Snapshot{OrderBookSnapshot: snapshotv1.OrderBookSnapshot{Orders: []snapshotv1.BookOrder{
				{Bid: false, Price: 99, Size: 3},
			}}},
			code: errors.SnapshotInvalidOrderError,
		},
		{
			name: "crossed",
			snapshot: &snapshotv1.Snapshot{OrderBookSnapshot: snapshotv1.OrderBookSnapshot{Orders: []snapshotv1.BookOrder{
				{OrderID: "B1", Bid: true, Price: 100, Size: 1},
				{OrderID: "S1", Bid: false, Price: 100, Size: 1},
			}}},
			code: errors.SnapshotCrossedBookError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ob, _ := newTestOrderbook()
			ob.Enter("keep", buy, 10, 1)

			err := ob.RestoreOrderbook(tc.snapshot)

			require.Error(t, err)
			assert.True(t, errors.ErrorCodeEquals(err, tc.code), err.Error())
			assert.Equal(t, 0, ob.Len())
			assert.Empty(t, ob.Bids())
			assert.Empty(t, ob.Asks())
		})
	}
}
