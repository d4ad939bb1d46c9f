// Package metrics defines and registers all custom Prometheus metrics for
// the khata dashboard. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default registry at import time via
// promauto; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "khata"

// ── Upstream gateway metrics ──────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests issued to the remote khata API.
// Labels:
//   - endpoint: logical operation name (e.g. "login", "dues_list")
//   - status: HTTP status code of the reply, or "error" when none arrived
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the remote khata API.",
	},
	[]string{"endpoint", "status"},
)

// UpstreamRequestDuration measures round-trip time per upstream operation.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream khata API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// UpstreamUnauthorizedTotal counts 401 replies that triggered the global
// logout path.
var UpstreamUnauthorizedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_unauthorized_total",
		Help:      "Total number of upstream 401 replies forcing a global logout.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and register attempts.
// Labels:
//   - operation: "login" or "register"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login/register attempts, by result.",
	},
	[]string{"operation", "result"},
)

// ── Connectivity metrics ──────────────────────────────────────────────────────

// ProbeChecksTotal counts connectivity probe outcomes.
// Label:
//   - result: "up" or "down"
var ProbeChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "probe_checks_total",
		Help:      "Total number of connectivity probe checks, by result.",
	},
	[]string{"result"},
)
