package orderbook

import (
	"fmt"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/matchbook/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/tidwall/btree"
)

// CreateSnapshot lists every resting order, bids best first then asks best
// first, FIFO within a level. Offsets and sequences are set by the caller.
func (ob *Orderbook) CreateSnapshot() *snapshotv1.Snapshot {
	bookOrders := make([]snapshotv1.BookOrder, 0, len(ob.orders))

	appendLevel := func(price int64, level *orderbookv1.PriceLevel) bool {
		for _, order := range level.Orders() {
			bookOrders = append(bookOrders, snapshotv1.BookOrder{
				OrderID: order.ID(),
				Bid:     level.Side().IsBid(),
				Price:   price,
				Size:    order.RemainingQuantity(),
			})
		}
		return true
	}
	ob.bids.Reverse(appendLevel)
	ob.asks.Scan(appendLevel)

	return &snapshotv1.Snapshot{
		OrderBookSnapshot: snapshotv1.OrderBookSnapshot{
			Orders: bookOrders,
		},
	}
}

// RestoreOrderbook replaces the book content with the snapshot without
// emitting events. On error the book is left empty.
func (ob *Orderbook) RestoreOrderbook(snapshot *snapshotv1.Snapshot) error {
	ob.clear()
	ob.buffer.Reset()

	if snapshot == nil {
		return errors.NewErrorDetails("snapshot cannot be nil", string(errors.SnapshotInvalidOrderError), "snapshot")
	}

	for _, bookOrder := range snapshot.OrderBookSnapshot.Orders {
		if err := ob.restoreOrder(bookOrder); err != nil {
			ob.clear()
			return err
		}
	}

	bid, hasBid := ob.BestBid()
	ask, hasAsk := ob.BestAsk()
	if hasBid && hasAsk && bid >= ask {
		ob.clear()
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("snapshot is crossed: best bid %d, best ask %d", bid, ask),
			string(errors.SnapshotCrossedBookError),
			"orders",
			snapshot.OrderOffset,
		)
	}

	return nil
}

func (ob *Orderbook) restoreOrder(bookOrder snapshotv1.BookOrder) error {
	if bookOrder.OrderID == "" || bookOrder.Size <= 0 {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("invalid snapshot order %q with size %d", bookOrder.OrderID, bookOrder.Size),
			string(errors.SnapshotInvalidOrderError),
			"orders",
			bookOrder,
		)
	}
	if _, exists := ob.orders[bookOrder.OrderID]; exists {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("order %s appears twice in snapshot", bookOrder.OrderID),
			string(errors.SnapshotDuplicateOrderError),
			"orders",
			bookOrder,
		)
	}

	side := orderbookv1.SideFromBid(bookOrder.Bid)
	book := ob.side(side)
	level, ok := book.Get(bookOrder.Price)
	if !ok {
		level = orderbookv1.NewPriceLevel(side, bookOrder.Price)
		book.Set(bookOrder.Price, level)
	}
	ob.orders[bookOrder.OrderID] = level.Add(bookOrder.OrderID, bookOrder.Size)

	return nil
}

func (ob *Orderbook) clear() {
	ob.bids = btree.NewMap[int64, *orderbookv1.PriceLevel](32)
	ob.asks = btree.NewMap[int64, *orderbookv1.PriceLevel](32)
	ob.orders = make(map[string]*orderbookv1.Order)
}
