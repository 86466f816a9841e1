package listener

import orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"

// Multi forwards every event to each listener in order.
type Multi []orderbookv1.Listener

var _ orderbookv1.Listener = Multi(nil)

// NewMulti drops nil listeners.
func NewMulti(listeners ...orderbookv1.Listener) Multi {
	m := make(Multi, 0, len(listeners))
	for _, l := range listeners {
		if l != nil {
			m = append(m, l)
		}
	}
	return m
}

// Match implements orderbookv1.Listener.
func (m Multi) Match(restingOrderID, incomingOrderID string, incomingSide orderbookv1.Side, price, executedQuantity, restingRemainingQuantity int64) {
	for _, l := range m {
		l.Match(restingOrderID, incomingOrderID, incomingSide, price, executedQuantity, restingRemainingQuantity)
	}
}

// Add implements orderbookv1.Listener.
func (m Multi) Add(orderID string, side orderbookv1.Side, price, size int64) {
	for _, l := range m {
		l.Add(orderID, side, price, size)
	}
}

// Cancel implements orderbookv1.Listener.
func (m Multi) Cancel(orderID string, price, canceledQuantity, remainingQuantity int64, side orderbookv1.Side) {
	for _, l := range m {
		l.Cancel(orderID, price, canceledQuantity, remainingQuantity, side)
	}
}
