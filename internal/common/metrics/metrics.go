// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	APIRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_failed_total",
			Help: "Total number of API requests that failed, by error code",
		},
		[]string{"operation", "error_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "api_request_duration_seconds",
			Help: "Duration of API requests in seconds",
		},
		[]string{"operation"},
	)
)
