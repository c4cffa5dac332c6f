// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace services. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed by the ops HTTP server at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── RPC metrics ───────────────────────────────────────────────────────────────

// RequestsTotal counts handled requests.
// Labels:
//   - service: "customer_db", "product_db", "buyer_frontend", "seller_frontend"
//   - api: the API name (e.g. "Login")
//   - code: "OK" or the error code of the response (e.g. "BAD_REQUEST")
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "Total number of RPC requests handled, by service, API and result code.",
	},
	[]string{"service", "api", "code"},
)

// RequestDuration measures handler latency, from decoded request to encoded response.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_request_duration_seconds",
		Help:      "Duration of RPC request handling.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"service", "api"},
)

// ActiveConnections tracks open client connections per service.
var ActiveConnections = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rpc_active_connections",
		Help:      "Current number of open RPC connections.",
	},
	[]string{"service"},
)

// ConnectionErrorsTotal counts connections closed on a transport failure.
// Label:
//   - reason: "frame" (bad length prefix or JSON), "read", "write"
var ConnectionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_connection_errors_total",
		Help:      "Total number of connections aborted by a transport-level failure.",
	},
	[]string{"service", "reason"},
)

// ClientRetriesTotal counts persistent-client redials after a transport failure.
var ClientRetriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_client_retries_total",
		Help:      "Total number of RPC calls retried on a fresh connection.",
	},
	[]string{"target"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// SnapshotWritesTotal counts full-state snapshot writes.
// Labels:
//   - store: "customer" or "product"
//   - backend: "file", "redis" or "mongo"
//   - result: "ok" or "error"
var SnapshotWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_writes_total",
		Help:      "Total number of snapshot writes, by store, backend and result.",
	},
	[]string{"store", "backend", "result"},
)

// SnapshotWriteDuration measures how long one snapshot write takes.
var SnapshotWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_write_duration_seconds",
		Help:      "Duration of a full-state snapshot write.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	},
	[]string{"store", "backend"},
)

// ── Frontend metrics ──────────────────────────────────────────────────────────

// FeedbackPropagationFailuresTotal counts item votes that were recorded but
// could not be applied to the seller's aggregate rating.
var FeedbackPropagationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_propagation_failures_total",
		Help:      "Total number of item votes whose seller rating update failed.",
	},
)
