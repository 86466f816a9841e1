package orderbook

import (
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/tidwall/btree"
)

type levels = btree.Map[int64, *orderbookv1.PriceLevel]

// Orderbook is a single-instrument limit order book with price-time priority.
// It does no locking; exactly one goroutine may drive it at a time.
type Orderbook struct {
	bids   *levels
	asks   *levels
	orders map[string]*orderbookv1.Order // orderID -> resting order

	listener orderbookv1.Listener
	buffer   *orderbookv1.EventBuffer
	recorder fillRecorder
}

var _ orderbookv1.Orderbook = (*Orderbook)(nil)

// NewOrderbook creates an empty orderbook delivering events to listener.
// A nil listener discards events.
func NewOrderbook(listener orderbookv1.Listener) *Orderbook {
	ob := &Orderbook{
		bids:   btree.NewMap[int64, *orderbookv1.PriceLevel](32),
		asks:   btree.NewMap[int64, *orderbookv1.PriceLevel](32),
		orders: make(map[string]*orderbookv1.Order),
		buffer: orderbookv1.NewEventBuffer(),
	}
	ob.recorder = fillRecorder{ob: ob}
	ob.SetListener(listener)
	return ob
}

// SetListener replaces the event listener.
func (ob *Orderbook) SetListener(listener orderbookv1.Listener) {
	if listener == nil {
		listener = orderbookv1.NopListener{}
	}
	ob.listener = listener
}

// Enter matches an incoming limit order against the opposite side and rests
// whatever is left. Events are delivered after the book has been updated.
func (ob *Orderbook) Enter(orderID string, side orderbookv1.Side, price, size int64) orderbookv1.Status {
	if _, exists := ob.orders[orderID]; exists {
		return orderbookv1.StatusDuplicate
	}
	if orderID == "" || !side.IsValid() || size <= 0 {
		return orderbookv1.StatusRejected
	}

	remaining := ob.match(orderID, side, price, size)
	if remaining > 0 {
		ob.rest(orderID, side, price, remaining)
	}

	ob.buffer.Flush(ob.listener)
	return orderbookv1.StatusApplied
}

// Cancel shrinks a resting order to size, removing it when size is zero or
// negative. It never grows an order.
func (ob *Orderbook) Cancel(orderID string, size int64) orderbookv1.Status {
	order, exists := ob.orders[orderID]
	if !exists {
		return orderbookv1.StatusNotFound
	}
	if size < 0 {
		size = 0
	}

	remaining := order.RemainingQuantity()
	if size >= remaining {
		return orderbookv1.StatusNoOp
	}

	level := order.Level()
	price, side := level.Price(), level.Side()

	if size == 0 {
		level.Delete(order)
		delete(ob.orders, orderID)
		if level.IsEmpty() {
			ob.side(side).Delete(price)
		}
	} else {
		level.Resize(order, size)
	}

	ob.buffer.Cancel(orderID, price, remaining-size, size, side)
	ob.buffer.Flush(ob.listener)
	return orderbookv1.StatusApplied
}

func (ob *Orderbook) match(orderID string, side orderbookv1.Side, price, quantity int64) int64 {
	opposite := ob.side(side.Opposite())

	for quantity > 0 {
		level, ok := ob.best(side.Opposite())
		if !ok || !crosses(side, price, level.Price()) {
			break
		}

		quantity = level.Match(orderID, side, quantity, ob.recorder)
		if level.IsEmpty() {
			opposite.Delete(level.Price())
		}
	}

	return quantity
}

func (ob *Orderbook) rest(orderID string, side orderbookv1.Side, price, size int64) {
	book := ob.side(side)
	level, ok := book.Get(price)
	if !ok {
		level = orderbookv1.NewPriceLevel(side, price)
		book.Set(price, level)
	}

	ob.orders[orderID] = level.Add(orderID, size)
	ob.buffer.Add(orderID, side, price, size)
}

// crosses reports whether an incoming order on side with the given limit
// can trade against a resting level at best.
func crosses(side orderbookv1.Side, limit, best int64) bool {
	if side == orderbookv1.SideBuy {
		return best <= limit
	}
	return best >= limit
}

func (ob *Orderbook) side(side orderbookv1.Side) *levels {
	if side == orderbookv1.SideBuy {
		return ob.bids
	}
	return ob.asks
}

func (ob *Orderbook) best(side orderbookv1.Side) (*orderbookv1.PriceLevel, bool) {
	var level *orderbookv1.PriceLevel
	var ok bool
	if side == orderbookv1.SideBuy {
		_, level, ok = ob.bids.Max()
	} else {
		_, level, ok = ob.asks.Min()
	}
	return level, ok
}

// Order returns a copy of the resting order with the given id.
func (ob *Orderbook) Order(orderID string) (orderbookv1.OrderView, bool) {
	order, ok := ob.orders[orderID]
	if !ok {
		return orderbookv1.OrderView{}, false
	}
	return order.View(), true
}

// RemainingQuantity returns the open quantity of a resting order, 0 if absent.
func (ob *Orderbook) RemainingQuantity(orderID string) int64 {
	if order, ok := ob.orders[orderID]; ok {
		return order.RemainingQuantity()
	}
	return 0
}

// Bids returns all bid levels, highest price first.
func (ob *Orderbook) Bids() []orderbookv1.LevelView {
	bids, _ := ob.Depth(0)
	return bids
}

// Asks returns all ask levels, lowest price first.
func (ob *Orderbook) Asks() []orderbookv1.LevelView {
	_, asks := ob.Depth(0)
	return asks
}

// Depth returns up to n best levels per side. n <= 0 returns every level.
func (ob *Orderbook) Depth(n int) (bids, asks []orderbookv1.LevelView) {
	collect := func(out *[]orderbookv1.LevelView) func(int64, *orderbookv1.PriceLevel) bool {
		*out = []orderbookv1.LevelView{}
		return func(_ int64, level *orderbookv1.PriceLevel) bool {
			*out = append(*out, level.View())
			return n <= 0 || len(*out) < n
		}
	}

	ob.bids.Reverse(collect(&bids))
	ob.asks.Scan(collect(&asks))
	return bids, asks
}

// BestBid returns the highest bid price.
func (ob *Orderbook) BestBid() (int64, bool) {
	price, _, ok := ob.bids.Max()
	return price, ok
}

// BestAsk returns the lowest ask price.
func (ob *Orderbook) BestAsk() (int64, bool) {
	price, _, ok := ob.asks.Min()
	return price, ok
}

// Len returns the number of resting orders.
func (ob *Orderbook) Len() int {
	return len(ob.orders)
}

// LevelCount returns the number of price levels on each side.
func (ob *Orderbook) LevelCount() (bids, asks int) {
	return ob.bids.Len(), ob.asks.Len()
}

// fillRecorder buffers match events and drops filled resting orders from
// the id index as they happen, so index and levels never disagree.
type fillRecorder struct {
	ob *Orderbook
}

func (r fillRecorder) Match(restingOrderID, incomingOrderID string, incomingSide orderbookv1.Side, price, executedQuantity, restingRemainingQuantity int64) {
	if restingRemainingQuantity == 0 {
		delete(r.ob.orders, restingOrderID)
	}
	r.ob.buffer.Match(restingOrderID, incomingOrderID, incomingSide, price, executedQuantity, restingRemainingQuantity)
}

func (r fillRecorder) Add(orderID string, side orderbookv1.Side, price, size int64) {
	r.ob.buffer.Add(orderID, side, price, size)
}

func (r fillRecorder) Cancel(orderID string, price, canceledQuantity, remainingQuantity int64, side orderbookv1.Side) {
	r.ob.buffer.Cancel(orderID, price, canceledQuantity, remainingQuantity, side)
}
