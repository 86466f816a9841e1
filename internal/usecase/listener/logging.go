package listener

import (
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
)

// Logging writes every book event at debug level.
type Logging struct {
	logger logger.Interface
}

var _ orderbookv1.Listener = (*Logging)(nil)

// NewLogging creates a logging listener tagged with the pair.
func NewLogging(log logger.Interface, pair string) *Logging {
	return &Logging{logger: log.WithFields(logger.NewField("pair", pair))}
}

// Match implements orderbookv1.Listener.
func (l *Logging) Match(restingOrderID, incomingOrderID string, incomingSide orderbookv1.Side, price, executedQuantity, restingRemainingQuantity int64) {
	l.logger.Debug("match",
		logger.NewField("restingOrderID", restingOrderID),
		logger.NewField("incomingOrderID", incomingOrderID),
		logger.NewField("incomingSide", incomingSide),
		logger.NewField("price", price),
		logger.NewField("executedQuantity", executedQuantity),
		logger.NewField("restingRemainingQuantity", restingRemainingQuantity),
	)
}

// Add implements orderbookv1.Listener.
func (l *Logging) Add(orderID string, side orderbookv1.Side, price, size int64) {
	l.logger.Debug("add",
		logger.NewField("orderID", orderID),
		logger.NewField("side", side),
		logger.NewField("price", price),
		logger.NewField("size", size),
	)
}

// Cancel implements orderbookv1.Listener.
func (l *Logging) Cancel(orderID string, price, canceledQuantity, remainingQuantity int64, side orderbookv1.Side) {
	l.logger.Debug("cancel",
		logger.NewField("orderID", orderID),
		logger.NewField("price", price),
		logger.NewField("canceledQuantity", canceledQuantity),
		logger.NewField("remainingQuantity", remainingQuantity),
		logger.NewField("side", side),
	)
}
