package commandv1

import (
	"encoding/json"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
)

// Type represents the kind of command.
type Type string

const (
	// TypeEnter submits a limit order.
	TypeEnter Type = "enter"
	// TypeCancel shrinks or removes a resting order.
	TypeCancel Type = "cancel"
)

// Command is a book mutation read from the command stream.
type Command struct {
	Type    Type             `json:"type"`
	OrderID string           `json:"orderID"`
	Side    orderbookv1.Side `json:"side,omitempty"`
	Price   int64            `json:"price,omitempty"`
	Size    int64            `json:"size"`
	Offset  int64            `json:"-"` // Offset of the command in the stream
}

// Validate checks the fields the book needs. Size is not checked here:
// the book rejects non-positive entries and clamps negative cancels.
func (c Command) Validate() error {
	baseErr := errors.NewBaseError()

	switch c.Type {
	case TypeEnter:
		if !c.Side.IsValid() {
			baseErr.AddErrorDetails(errors.NewErrorDetailsWithObject("side must be buy or sell", string(errors.CommandInvalidSideError), "side", c.Side))
		}
	case TypeCancel:
	default:
		baseErr.AddErrorDetails(errors.NewErrorDetailsWithObject("unknown command type", string(errors.CommandInvalidTypeError), "type", c.Type))
	}

	if c.OrderID == "" {
		baseErr.AddErrorDetails(errors.NewErrorDetails("order id is required", string(errors.CommandInvalidOrderIDError), "orderID"))
	}

	if baseErr.HasDetails() {
		return baseErr
	}
	return nil
}

// Apply runs the command against the book.
func (c Command) Apply(book orderbookv1.Orderbook) orderbookv1.Status {
	if c.Type == TypeCancel {
		return book.Cancel(c.OrderID, c.Size)
	}
	return book.Enter(c.OrderID, c.Side, c.Price, c.Size)
}

// FromBytes decodes a JSON command.
func FromBytes(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, errors.NewErrorDetailsWithObject("failed to decode command", string(errors.CommandDecodeError), "value", err.Error())
	}
	return cmd, nil
}

// ToBytes encodes the command as JSON.
func (c Command) ToBytes() ([]byte, error) {
	return json.Marshal(c)
}
