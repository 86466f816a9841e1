package listener

import (
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts book events in prometheus collectors.
type Metrics struct {
	matches          prometheus.Counter
	executedQuantity prometheus.Counter
	adds             *prometheus.CounterVec
	cancels          *prometheus.CounterVec
	canceledQuantity prometheus.Counter
	resting          prometheus.Gauge
	commands         *prometheus.CounterVec
}

var _ orderbookv1.Listener = (*Metrics)(nil)

// NewMetrics creates the collectors with a constant pair label and registers them on reg.
func NewMetrics(reg prometheus.Registerer, pair string) *Metrics {
	labels := prometheus.Labels{"pair": pair}

	m := &Metrics{
		matches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "matchbook",
			Name:        "matches_total",
			Help:        "Total number of match events",
			ConstLabels: labels,
		}),
		executedQuantity: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "matchbook",
			Name:        "executed_quantity_total",
			Help:        "Total quantity executed across all matches",
			ConstLabels: labels,
		}),
		adds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "matchbook",
			Name:        "adds_total",
			Help:        "Total number of orders that came to rest",
			ConstLabels: labels,
		}, []string{"side"}),
		cancels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "matchbook",
			Name:        "cancels_total",
			Help:        "Total number of cancel events",
			ConstLabels: labels,
		}, []string{"side"}),
		canceledQuantity: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "matchbook",
			Name:        "canceled_quantity_total",
			Help:        "Total quantity removed by cancels",
			ConstLabels: labels,
		}),
		resting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "matchbook",
			Name:        "resting_orders",
			Help:        "Number of orders resting in the book",
			ConstLabels: labels,
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "matchbook",
			Name:        "commands_total",
			Help:        "Total number of processed commands by type and status",
			ConstLabels: labels,
		}, []string{"type", "status"}),
	}

	reg.MustRegister(m.matches, m.executedQuantity, m.adds, m.cancels, m.canceledQuantity, m.resting, m.commands)
	return m
}

// Match implements orderbookv1.Listener.
func (m *Metrics) Match(_, _ string, _ orderbookv1.Side, _, executedQuantity, restingRemainingQuantity int64) {
	m.matches.Inc()
	m.executedQuantity.Add(float64(executedQuantity))
	if restingRemainingQuantity == 0 {
		m.resting.Dec()
	}
}

// Add implements orderbookv1.Listener.
func (m *Metrics) Add(_ string, side orderbookv1.Side, _, _ int64) {
	m.adds.WithLabelValues(string(side)).Inc()
	m.resting.Inc()
}

// Cancel implements orderbookv1.Listener.
func (m *Metrics) Cancel(_ string, _, canceledQuantity, remainingQuantity int64, side orderbookv1.Side) {
	m.cancels.WithLabelValues(string(side)).Inc()
	m.canceledQuantity.Add(float64(canceledQuantity))
	if remainingQuantity == 0 {
		m.resting.Dec()
	}
}

// ObserveCommand counts a processed command.
func (m *Metrics) ObserveCommand(commandType string, status orderbookv1.Status) {
	m.commands.WithLabelValues(commandType, string(status)).Inc()
}

// SetResting overwrites the resting gauge, e.g. after a snapshot restore.
func (m *Metrics) SetResting(n int) {
	m.resting.Set(float64(n))
}
