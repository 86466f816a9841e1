package orderbookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderIDs(orders []*Order) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids
}

func TestNewPriceLevel(t *testing.T) {
	level := NewPriceLevel(SideSell, 100)

	assert.Equal(t, SideSell, level.Side())
	assert.Equal(t, int64(100), level.Price())
	assert.True(t, level.IsEmpty())
	assert.Nil(t, level.Head())
	assert.Equal(t, 0, level.Len())
	assert.Equal(t, int64(0), level.TotalQuantity())
	assert.Empty(t, level.Orders())
}

func TestPriceLevel_Add(t *testing.T) {
	level := NewPriceLevel(SideBuy, 99)

	first := level.Add("B1", 10)
	second := level.Add("B2", 5)

	assert.Equal(t, "B1", first.ID())
	assert.Equal(t, int64(10), first.RemainingQuantity())
	assert.Equal(t, level, first.Level())
	assert.Equal(t, int64(99), first.Price())
	assert.Equal(t, SideBuy, second.Side())

	assert.Equal(t, first, level.Head())
	assert.Equal(t, 2, level.Len())
	assert.Equal(t, int64(15), level.TotalQuantity())
	assert.Equal(t, []string{"B1", "B2"}, orderIDs(level.Orders()))
}

func TestPriceLevel_Match(t *testing.T) {
	testCases := []struct {
		name          string
		resting       map[string]int64
		order         []string
		quantity      int64
		wantRemaining int64
		wantOrders    []string
		wantEvents    []Event
	}{
		{
			name:          "partial fill of head stops matching",
			resting:       map[string]int64{"S1": 10, "S2": 10},
			order:         []string{"S1", "S2"},
			quantity:      4,
			wantRemaining: 0,
			wantOrders:    []string{"S1", "S2"},
			wantEvents: []Event{
				{Type: EventTypeMatch, OrderID: "S1", IncomingOrderID: "B9", Side: SideBuy, Price: 100, Quantity: 4, RemainingQuantity: 6},
			},
		},
		{
			name:          "exact fill removes head",
			resting:       map[string]int64{"S1": 10, "S2": 10},
			order:         []string{"S1", "S2"},
			quantity:      10,
			wantRemaining: 0,
			wantOrders:    []string{"S2"},
			wantEvents: []Event{
				{Type: EventTypeMatch, OrderID: "S1", IncomingOrderID: "B9", Side: SideBuy, Price: 100, Quantity: 10, RemainingQuantity: 0},
			},
		},
		{
			name:          "sweeps in FIFO order",
			resting:       map[string]int64{"S1": 3, "S2": 4, "S3": 5},
			order:         []string{"S1", "S2", "S3"},
			quantity:      9,
			wantRemaining: 0,
			wantOrders:    []string{"S3"},
			wantEvents: []Event{
				{Type: EventTypeMatch, OrderID: "S1", IncomingOrderID: "B9", Side: SideBuy, Price: 100, Quantity: 3, RemainingQuantity: 0},
				{Type: EventTypeMatch, OrderID: "S2", IncomingOrderID: "B9", Side: SideBuy, Price: 100, Quantity: 4, RemainingQuantity: 0},
				{Type: EventTypeMatch, OrderID: "S3", IncomingOrderID: "B9", Side: SideBuy, Price: 100, Quantity: 2, RemainingQuantity: 3},
			},
		},
		{
			name:          "returns unabsorbed quantity",
			resting:       map[string]int64{"S1": 3},
			order:         []string{"S1"},
			quantity:      8,
			wantRemaining: 5,
			wantOrders:    []string{},
			wantEvents: []Event{
				{Type: EventTypeMatch, OrderID: "S1", IncomingOrderID: "B9", Side: SideBuy, Price: 100, Quantity: 3, RemainingQuantity: 0},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level := NewPriceLevel(SideSell, 100)
			var total int64
			for _, id := range tc.order {
				level.Add(id, tc.resting[id])
				total += tc.resting[id]
			}
			buf := NewEventBuffer()

			remaining := level.Match("B9", SideBuy, tc.quantity, buf)

			assert.Equal(t, tc.wantRemaining, remaining)
			assert.Equal(t, tc.wantOrders, orderIDs(level.Orders()))
			assert.Equal(t, tc.wantEvents, buf.Events())
			assert.Equal(t, total-(tc.quantity-remaining), level.TotalQuantity())
			assert.Equal(t, len(tc.wantOrders), level.Len())
		})
	}
}

func TestPriceLevel_MatchFilledOrderLeavesLevel(t *testing.T) {
	level := NewPriceLevel(SideSell, 100)
	filled := level.Add("S1", 2)

	level.Match("B1", SideBuy, 2, NopListener{})

	assert.Nil(t, filled.Level())
	assert.Equal(t, int64(0), filled.RemainingQuantity())
	assert.True(t, level.IsEmpty())
}

func TestPriceLevel_Delete(t *testing.T) {
	testCases := []struct {
		name   string
		delete string
		want   []string
	}{
		{"head", "O1", []string{"O2", "O3"}},
		{"middle", "O2", []string{"O1", "O3"}},
		{"tail", "O3", []string{"O1", "O2"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level := NewPriceLevel(SideBuy, 50)
			records := map[string]*Order{}
			for _, id := range []string{"O1", "O2", "O3"} {
				records[id] = level.Add(id, 10)
			}

			level.Delete(records[tc.delete])

			assert.Equal(t, tc.want, orderIDs(level.Orders()))
			assert.Equal(t, int64(20), level.TotalQuantity())
			assert.Equal(t, 2, level.Len())
			assert.Nil(t, records[tc.delete].Level())

			// the list must stay appendable after unlinking
			level.Add("O4", 1)
			assert.Equal(t, append(tc.want, "O4"), orderIDs(level.Orders()))
		})
	}

	t.Run("last order empties level", func(t *testing.T) {
		level := NewPriceLevel(SideBuy, 50)
		o := level.Add("O1", 10)

		level.Delete(o)

		assert.True(t, level.IsEmpty())
		assert.Nil(t, level.Head())
		assert.Equal(t, int64(0), level.TotalQuantity())
	})
}

func TestPriceLevel_Resize(t *testing.T) {
	level := NewPriceLevel(SideSell, 101)
	first := level.Add("S1", 10)
	level.Add("S2", 10)

	level.Resize(first, 4)

	assert.Equal(t, int64(4), first.RemainingQuantity())
	assert.Equal(t, int64(14), level.TotalQuantity())
	require.Equal(t, first, level.Head())

	buf := NewEventBuffer()
	level.Match("B1", SideBuy, 5, buf)
	events := buf.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "S1", events[0].OrderID)
	assert.Equal(t, int64(4), events[0].Quantity)
	assert.Equal(t, "S2", events[1].OrderID)
	assert.Equal(t, int64(9), events[1].RemainingQuantity)
}

func TestPriceLevel_View(t *testing.T) {
	level := NewPriceLevel(SideBuy, 98)
	level.Add("B1", 3)
	level.Add("B2", 7)

	assert.Equal(t, LevelView{
		Side:          SideBuy,
		Price:         98,
		TotalQuantity: 10,
		Orders: []OrderView{
			{ID: "B1", Side: SideBuy, Price: 98, RemainingQuantity: 3},
			{ID: "B2", Side: SideBuy, Price: 98, RemainingQuantity: 7},
		},
	}, level.View())
}
