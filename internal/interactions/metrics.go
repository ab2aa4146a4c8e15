package interactions

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	InteractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_total",
			Help: "Interactions handled, by type and command or component kind",
		},
		[]string{"type", "name"},
	)
	GamesResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_resolved_total",
			Help: "Games resolved, by outcome",
		},
		[]string{"outcome"},
	)
	FollowUpFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follow_up_failures_total",
			Help: "Outbound follow-up calls that failed",
		},
		[]string{"call"},
	)
)

func init() {
	prometheus.MustRegister(InteractionsTotal)
	prometheus.MustRegister(GamesResolved)
	prometheus.MustRegister(FollowUpFailures)
}

// NewActiveSessionsGauge exposes the number of pending sessions.
func NewActiveSessionsGauge(store interface{ Len() int }) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Challenges waiting for an opponent",
		},
		func() float64 { return float64(store.Len()) },
	)
}
