package recommender

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	recommendationsServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Count of recommendation responses by strategy.",
		},
		[]string{"strategy"},
	)
)

func init() {
	prometheus.MustRegister(recommendationsServedTotal)
}
