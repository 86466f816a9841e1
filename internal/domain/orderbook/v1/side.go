package orderbookv1

// Side is the side of the book an order rests on.
type Side string

const (
	// SideBuy is a bid. Bid levels are ordered best first by descending price.
	SideBuy Side = "buy"
	// SideSell is an ask. Ask levels are ordered best first by ascending price.
	SideSell Side = "sell"
)

// IsValid reports whether s is one of SideBuy or SideSell.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the side an incoming order of side s matches against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// IsBid checks if the side is buy.
func (s Side) IsBid() bool {
	return s == SideBuy
}

// SideFromBid maps the boolean bid flag used by snapshots onto a Side.
func SideFromBid(bid bool) Side {
	if bid {
		return SideBuy
	}
	return SideSell
}
