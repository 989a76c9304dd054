// Package metrics exposes the Prometheus collectors for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method and path.
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordertrack_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ordertrack_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// ScanLookups counts barcode/order-number lookups by outcome, so the
	// shop can see how often stations scan codes that resolve to nothing.
	ScanLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordertrack_scan_lookups_total",
			Help: "Order scan lookups by outcome (found, not_found, error)",
		},
		[]string{"outcome"},
	)

	// EditDenied counts column edits rejected by the permission policy.
	EditDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ordertrack_edit_denied_total",
			Help: "Order column edits denied by role/column authorization",
		},
		[]string{"role"},
	)
)
