package orderbookv1

import snapshotv1 "github.com/muhammadchandra19/matchbook/internal/domain/snapshot/v1"

// Orderbook defines a single-instrument limit order book with price-time priority.
type Orderbook interface {
	Enter(orderID string, side Side, price, size int64) Status
	Cancel(orderID string, size int64) Status

	Order(orderID string) (OrderView, bool)
	RemainingQuantity(orderID string) int64
	Bids() []LevelView
	Asks() []LevelView
	Depth(levels int) (bids, asks []LevelView)
	BestBid() (int64, bool)
	BestAsk() (int64, bool)
	Len() int

	CreateSnapshot() *snapshotv1.Snapshot
	RestoreOrderbook(snapshot *snapshotv1.Snapshot) error
}
