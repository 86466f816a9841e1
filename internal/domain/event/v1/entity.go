package eventv1

import (
	"encoding/json"
	"time"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/oklog/ulid/v2"
)

// Payload is a book event as published to downstream consumers.
type Payload struct {
	EventID           string                `json:"eventID"`
	Pair              string                `json:"pair"`
	Sequence          int64                 `json:"sequence"`
	CommandOffset     int64                 `json:"commandOffset"`
	Type              orderbookv1.EventType `json:"type"`
	OrderID           string                `json:"orderID"`
	IncomingOrderID   string                `json:"incomingOrderID,omitempty"`
	Side              orderbookv1.Side      `json:"side"`
	Price             int64                 `json:"price"`
	Quantity          int64                 `json:"quantity"`
	RemainingQuantity int64                 `json:"remainingQuantity"`
	Timestamp         time.Time             `json:"timestamp"`
}

// CreateFromEvent creates a payload from a book event.
func CreateFromEvent(pair string, sequence, commandOffset int64, event orderbookv1.Event, ts time.Time) *Payload {
	return &Payload{
		EventID:           ulid.MustNew(ulid.Timestamp(ts), ulid.DefaultEntropy()).String(),
		Pair:              pair,
		Sequence:          sequence,
		CommandOffset:     commandOffset,
		Type:              event.Type,
		OrderID:           event.OrderID,
		IncomingOrderID:   event.IncomingOrderID,
		Side:              event.Side,
		Price:             event.Price,
		Quantity:          event.Quantity,
		RemainingQuantity: event.RemainingQuantity,
		Timestamp:         ts.UTC(),
	}
}

// Event returns the book event carried by the payload.
func (p *Payload) Event() orderbookv1.Event {
	return orderbookv1.Event{
		Type:              p.Type,
		OrderID:           p.OrderID,
		IncomingOrderID:   p.IncomingOrderID,
		Side:              p.Side,
		Price:             p.Price,
		Quantity:          p.Quantity,
		RemainingQuantity: p.RemainingQuantity,
	}
}

// ToBytes converts the payload to a byte array.
func ToBytes(payload *Payload) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// FromBytes converts a byte array to a payload.
func FromBytes(data []byte) *Payload {
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return &payload
}
