package orderbookv1

// OrderView is a read-only copy of a resting order.
type OrderView struct {
	ID                string `json:"id"`
	Side              Side   `json:"side"`
	Price             int64  `json:"price"`
	RemainingQuantity int64  `json:"remainingQuantity"`
}

// LevelView is a read-only copy of a price level, orders in FIFO order.
type LevelView struct {
	Side          Side        `json:"side"`
	Price         int64       `json:"price"`
	TotalQuantity int64       `json:"totalQuantity"`
	Orders        []OrderView `json:"orders"`
}
