package listener

import (
	"testing"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/internal/usecase/orderbook"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMulti(t *testing.T) {
	first := orderbookv1.NewEventBuffer()
	second := orderbookv1.NewEventBuffer()
	m := NewMulti(first, nil, second)
	require.Len(t, m, 2)

	m.Add("B1", orderbookv1.SideBuy, 100, 5)
	m.Match("B1", "S1", orderbookv1.SideSell, 100, 2, 3)
	m.Cancel("B1", 100, 3, 0, orderbookv1.SideBuy)

	assert.Equal(t, 3, first.Len())
	assert.Equal(t, first.Events(), second.Events())
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLogging(logger.NewFromZap(zap.New(core)), "BTC-USD")

	ob := orderbook.NewOrderbook(l)
	ob.Enter("S1", orderbookv1.SideSell, 100, 5)
	ob.Enter("B1", orderbookv1.SideBuy, 100, 2)
	ob.Cancel("S1", 0)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "add", entries[0].Message)
	assert.Equal(t, "match", entries[1].Message)
	assert.Equal(t, "cancel", entries[2].Message)
	assert.Equal(t, "BTC-USD", entries[1].ContextMap()["pair"])
	assert.Equal(t, int64(3), entries[1].ContextMap()["restingRemainingQuantity"])
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "BTC-USD")

	ob := orderbook.NewOrderbook(m)
	ob.Enter("S1", orderbookv1.SideSell, 100, 5)
	ob.Enter("S2", orderbookv1.SideSell, 101, 5)
	ob.Enter("B1", orderbookv1.SideBuy, 101, 7)
	ob.Cancel("S2", 1)
	m.ObserveCommand("enter", orderbookv1.StatusApplied)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.matches))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.executedQuantity))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.adds.WithLabelValues("sell")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cancels.WithLabelValues("sell")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.canceledQuantity))
	assert.Equal(t, float64(ob.Len()), testutil.ToFloat64(m.resting))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("enter", "applied")))

	m.SetResting(10)
	assert.Equal(t, 10.0, testutil.ToFloat64(m.resting))
}
