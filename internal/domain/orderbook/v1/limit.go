package orderbookv1

// PriceLevel is the FIFO queue of resting orders at one price on one side.
// Orders form an intrusive doubly linked list so removal by record is O(1).
type PriceLevel struct {
	side  Side
	price int64

	head  *Order
	tail  *Order
	count int
	total int64
}

// NewPriceLevel creates an empty level.
func NewPriceLevel(side Side, price int64) *PriceLevel {
	return &PriceLevel{
		side:  side,
		price: price,
	}
}

// Side returns the side of the level.
func (l *PriceLevel) Side() Side {
	return l.side
}

// Price returns the price of the level.
func (l *PriceLevel) Price() int64 {
	return l.price
}

// Len returns the number of resting orders.
func (l *PriceLevel) Len() int {
	return l.count
}

// TotalQuantity returns the sum of remaining quantities of all orders.
func (l *PriceLevel) TotalQuantity() int64 {
	return l.total
}

// IsEmpty checks if the level has no orders.
func (l *PriceLevel) IsEmpty() bool {
	return l.head == nil
}

// Head returns the order with time priority, or nil.
func (l *PriceLevel) Head() *Order {
	return l.head
}

// Orders returns the resting orders in FIFO order.
func (l *PriceLevel) Orders() []*Order {
	orders := make([]*Order, 0, l.count)
	for o := l.head; o != nil; o = o.next {
		orders = append(orders, o)
	}
	return orders
}

// View returns a read-only copy of the level and its orders.
func (l *PriceLevel) View() LevelView {
	view := LevelView{
		Side:          l.side,
		Price:         l.price,
		TotalQuantity: l.total,
		Orders:        make([]OrderView, 0, l.count),
	}
	for o := l.head; o != nil; o = o.next {
		view.Orders = append(view.Orders, o.View())
	}
	return view
}

// Add appends a new order at the tail and returns its record.
// The caller guarantees size > 0 and that the id is not resting elsewhere.
func (l *PriceLevel) Add(orderID string, size int64) *Order {
	order := &Order{
		id:        orderID,
		remaining: size,
		level:     l,
		prev:      l.tail,
	}

	if l.tail == nil {
		l.head = order
	} else {
		l.tail.next = order
	}
	l.tail = order
	l.count++
	l.total += size

	return order
}

// Match consumes up to quantity from the head of the queue at the level price.
// A partially filled head stays in place and ends the match; a fully filled
// head is unlinked and matching moves to the next order. One match event is
// emitted per touched order. Returns the quantity left unabsorbed.
func (l *PriceLevel) Match(incomingOrderID string, incomingSide Side, quantity int64, listener Listener) int64 {
	for quantity > 0 && l.head != nil {
		head := l.head

		if quantity < head.remaining {
			head.reduce(quantity)
			l.total -= quantity
			listener.Match(head.id, incomingOrderID, incomingSide, l.price, quantity, head.remaining)

			return 0
		}

		executed := head.remaining
		quantity -= executed
		l.unlink(head)
		head.reduce(executed)
		listener.Match(head.id, incomingOrderID, incomingSide, l.price, executed, 0)
	}

	return quantity
}

// Delete removes the order from the level.
func (l *PriceLevel) Delete(order *Order) {
	l.unlink(order)
}

// Resize shrinks the order in place without changing its queue position.
// The caller guarantees 0 < size < order.RemainingQuantity().
func (l *PriceLevel) Resize(order *Order, size int64) {
	l.total += size - order.remaining
	order.resize(size)
}

func (l *PriceLevel) unlink(order *Order) {
	if order.prev == nil {
		l.head = order.next
	} else {
		order.prev.next = order.next
	}
	if order.next == nil {
		l.tail = order.prev
	} else {
		order.next.prev = order.prev
	}

	l.count--
	l.total -= order.remaining

	order.prev = nil
	order.next = nil
	order.level = nil
}
