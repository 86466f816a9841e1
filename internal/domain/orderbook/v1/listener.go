package orderbookv1

// Listener receives the events produced by the book, in the order they happened.
type Listener interface {
	// Match is called once per resting order touched by an incoming order.
	// restingRemainingQuantity is zero when the resting order was filled.
	Match(restingOrderID, incomingOrderID string, incomingSide Side, price, executedQuantity, restingRemainingQuantity int64)
	// Add is called when the unfilled part of an incoming order rests.
	Add(orderID string, side Side, price, size int64)
	// Cancel is called when a resting order is shrunk or removed.
	Cancel(orderID string, price, canceledQuantity, remainingQuantity int64, side Side)
}

// EventType names the kind of book event.
type EventType string

const (
	// EventTypeMatch is a trade between a resting and an incoming order.
	EventTypeMatch EventType = "match"
	// EventTypeAdd is an order coming to rest.
	EventTypeAdd EventType = "add"
	// EventTypeCancel is a resting order losing quantity by request.
	EventTypeCancel EventType = "cancel"
)

// Event is a recorded Listener call.
//
// For match events OrderID is the resting order, Side is the incoming side,
// Quantity is the executed quantity and RemainingQuantity is what is left on
// the resting order. For add events Quantity is the rested size. For cancel
// events Quantity is the canceled quantity.
type Event struct {
	Type              EventType `json:"type"`
	OrderID           string    `json:"orderID"`
	IncomingOrderID   string    `json:"incomingOrderID,omitempty"`
	Side              Side      `json:"side"`
	Price             int64     `json:"price"`
	Quantity          int64     `json:"quantity"`
	RemainingQuantity int64     `json:"remainingQuantity"`
}

// Deliver replays the event on l.
func (e Event) Deliver(l Listener) {
	switch e.Type {
	case EventTypeMatch:
		l.Match(e.OrderID, e.IncomingOrderID, e.Side, e.Price, e.Quantity, e.RemainingQuantity)
	case EventTypeAdd:
		l.Add(e.OrderID, e.Side, e.Price, e.Quantity)
	case EventTypeCancel:
		l.Cancel(e.OrderID, e.Price, e.Quantity, e.RemainingQuantity, e.Side)
	}
}

// EventBuffer is a Listener that records events until they are flushed.
type EventBuffer struct {
	events   []Event
	flushing bool
}

var _ Listener = (*EventBuffer)(nil)

// NewEventBuffer creates an empty buffer.
func NewEventBuffer() *EventBuffer {
	return &EventBuffer{events: make([]Event, 0, 16)}
}

// Match records a match event.
func (b *EventBuffer) Match(restingOrderID, incomingOrderID string, incomingSide Side, price, executedQuantity, restingRemainingQuantity int64) {
	b.events = append(b.events, Event{
		Type:              EventTypeMatch,
		OrderID:           restingOrderID,
		IncomingOrderID:   incomingOrderID,
		Side:              incomingSide,
		Price:             price,
		Quantity:          executedQuantity,
		RemainingQuantity: restingRemainingQuantity,
	})
}

// Add records an add event.
func (b *EventBuffer) Add(orderID string, side Side, price, size int64) {
	b.events = append(b.events, Event{
		Type:     EventTypeAdd,
		OrderID:  orderID,
		Side:     side,
		Price:    price,
		Quantity: size,
	})
}

// Cancel records a cancel event.
func (b *EventBuffer) Cancel(orderID string, price, canceledQuantity, remainingQuantity int64, side Side) {
	b.events = append(b.events, Event{
		Type:              EventTypeCancel,
		OrderID:           orderID,
		Side:              side,
		Price:             price,
		Quantity:          canceledQuantity,
		RemainingQuantity: remainingQuantity,
	})
}

// Len returns the number of pending events.
func (b *EventBuffer) Len() int {
	return len(b.events)
}

// Events returns a copy of the pending events.
func (b *EventBuffer) Events() []Event {
	events := make([]Event, len(b.events))
	copy(events, b.events)
	return events
}

// Reset drops the pending events.
func (b *EventBuffer) Reset() {
	b.events = b.events[:0]
}

// Flush delivers the pending events to l and empties the buffer. Events
// recorded while l is running (a listener re-entering the book) are queued
// behind the ones already pending and delivered by the same Flush call.
func (b *EventBuffer) Flush(l Listener) {
	if b.flushing {
		return
	}
	b.flushing = true
	defer func() {
		b.events = b.events[:0]
		b.flushing = false
	}()

	for i := 0; i < len(b.events); i++ {
		b.events[i].Deliver(l)
	}
}

// NopListener ignores every event.
type NopListener struct{}

// Match implements Listener.
func (NopListener) Match(string, string, Side, int64, int64, int64) {}

// Add implements Listener.
func (NopListener) Add(string, Side, int64, int64) {}

// Cancel implements Listener.
func (NopListener) Cancel(string, int64, int64, int64, Side) {}
