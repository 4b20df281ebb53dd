// Package metrics exposes Prometheus collectors for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts completed HTTP requests by method, route, and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "captable_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "captable_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "route"},
	)

	// AllocationMutations counts allocation lifecycle mutations by action
	// (confirm, unconfirm, update, delete, mint, distribute, bulk_*) and
	// outcome (ok, error).
	AllocationMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "captable_allocation_mutations_total",
			Help: "Total number of allocation mutations by action and outcome",
		},
		[]string{"action", "outcome"},
	)
)

// Outcome converts an error into the label value used by AllocationMutations.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
