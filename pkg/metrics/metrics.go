package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendations HTTP handler
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendations endpoint",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	LoginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Total number of login attempts by status",
	}, []string{"status"})

	SignupAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signup_attempts_total",
		Help: "Total number of signup attempts by status",
	}, []string{"status"})
)

func Init() {
	prometheus.MustRegister(
		RecommendDuration,
		RecommendTotal,
		LoginAttemptsTotal,
		SignupAttemptsTotal,
	)
}
