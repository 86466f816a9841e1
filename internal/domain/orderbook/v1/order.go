package orderbookv1

// Order is a resting order. It exists only while it sits in a PriceLevel;
// fully filled or fully canceled orders are unlinked and dropped.
type Order struct {
	id        string
	remaining int64
	level     *PriceLevel

	prev *Order
	next *Order
}

// ID returns the order id.
func (o *Order) ID() string {
	return o.id
}

// RemainingQuantity returns the quantity still open on the order.
func (o *Order) RemainingQuantity() int64 {
	return o.remaining
}

// Level returns the level the order rests on, or nil once it left the book.
func (o *Order) Level() *PriceLevel {
	return o.level
}

// Price returns the price of the owning level.
func (o *Order) Price() int64 {
	if o.level == nil {
		return 0
	}
	return o.level.price
}

// Side returns the side of the owning level.
func (o *Order) Side() Side {
	if o.level == nil {
		return ""
	}
	return o.level.side
}

// View returns a read-only copy of the order.
func (o *Order) View() OrderView {
	return OrderView{
		ID:                o.id,
		Side:              o.Side(),
		Price:             o.Price(),
		RemainingQuantity: o.remaining,
	}
}

func (o *Order) reduce(quantity int64) {
	o.remaining -= quantity
}

func (o *Order) resize(size int64) {
	o.remaining = size
}
