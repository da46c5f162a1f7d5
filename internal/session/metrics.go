package session

import "github.com/prometheus/client_golang/prometheus"

var (
	roundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fair_rps_rounds_total",
			Help: "Resolved rounds by user outcome",
		},
		[]string{"outcome"},
	)
	commitmentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fair_rps_commitments_total",
			Help: "Computer moves committed",
		},
	)
)

func init() {
	prometheus.MustRegister(roundsTotal)
	prometheus.MustRegister(commitmentsTotal)
}
