package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	FeedbackSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submissions_total",
			Help: "Total number of feedback submissions by outcome",
		},
		[]string{"outcome"},
	)

	LoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	ReportsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of reports generated by type",
		},
		[]string{"type"},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(FeedbackSubmissionsTotal)
	prometheus.MustRegister(LoginAttemptsTotal)
	prometheus.MustRegister(ReportsGeneratedTotal)
}
