// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CodeValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "code_validations_total",
			Help: "Verification code validation outcomes",
		},
		[]string{"result"},
	)

	ProgressWritesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "progress_writes_total",
			Help: "Course progress upserts persisted",
		},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
