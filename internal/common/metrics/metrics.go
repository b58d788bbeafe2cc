// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CustomersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "customers_created_total",
			Help: "Total number of customers created on the remote service",
		},
	)

	ContactMethodsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_methods_submitted_total",
			Help: "Total number of contact methods submitted, by kind",
		},
		[]string{"kind"},
	)

	ContactMethodsStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_methods_responses_total",
			Help: "Contact-methods submissions by HTTP status class",
		},
		[]string{"status_class"},
	)

	SubmissionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_submissions_failed_total",
			Help: "Total number of customers that could not be fully submitted",
		},
		[]string{"stage", "error_code"},
	)

	SubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "customer_submission_duration_seconds",
			Help:    "Duration of one customer's end-to-end submission in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// StatusClass maps 201 to "2xx", 404 to "4xx" and so on.
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return string(rune('0'+code/100)) + "xx"
}
