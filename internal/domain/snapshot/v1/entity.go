package snapshotv1

// Snapshot represents a snapshot of the order book at a specific point in time.
type Snapshot struct {
	OrderOffset       int64             `json:"orderOffset"`
	OrderBookSnapshot OrderBookSnapshot `json:"orderBookSnapshot"`
}

// OrderBookSnapshot represents the state of the order book at a specific point in time.
// Orders are listed bids best first, then asks best first, FIFO within a level.
type OrderBookSnapshot struct {
	Orders        []BookOrder `json:"orders"`
	EventSequence int64       `json:"eventSequence"`
}

// BookOrder represents a resting order with its remaining size.
type BookOrder struct {
	OrderID string `json:"orderID"`
	Bid     bool   `json:"bid"`
	Price   int64  `json:"price"`
	Size    int64  `json:"size"`
}
