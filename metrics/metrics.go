// Package metrics defines and registers the application's Prometheus
// metrics. It is the single source of truth for metric names, labels, and
// help strings; everything registers with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "usermanagement"

// AuditEntriesTotal counts audit log entries written, labelled by action
// ("Created", "Updated", "Deleted", "Viewed").
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit log entries written.",
	},
	[]string{"action"},
)

// AuditAppendErrorsTotal counts audit writes that failed after the user
// mutation had already succeeded.
var AuditAppendErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_append_errors_total",
		Help:      "Total number of failed audit log writes.",
	},
)

// HTTPRequestsTotal counts handled HTTP requests by method and status class.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "status"},
)
