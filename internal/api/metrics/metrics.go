// Package metrics defines and registers all custom Prometheus metrics for the
// Courtside auth gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "courtside"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Labels:
//   - method: "password", "private", or "signup"
//   - result: "success", "invalid_credentials", or "upstream_error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// SessionInvalidationsTotal counts destroyed sessions.
// Label:
//   - reason: "sign_out", "token_rejected", or "corrupt_record"
var SessionInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_invalidations_total",
		Help:      "Total number of sessions destroyed, by reason.",
	},
	[]string{"reason"},
)

// ── Edge guard metrics ────────────────────────────────────────────────────────

// GuardRedirectsTotal counts route-guard redirects.
// Label:
//   - rule: "authenticated_public" (signed-in user on /signin or /signup) or
//     "anonymous_direct" (direct navigation to a protected page without a token)
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of edge route-guard redirects, by rule.",
	},
	[]string{"rule"},
)

// GateRedirectsTotal counts profile-completion gate redirects.
var GateRedirectsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_redirects_total",
		Help:      "Total number of redirects to the profile-completion flow.",
	},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestDuration measures platform API call latency.
// Labels:
//   - endpoint: logical endpoint name (e.g. "login", "profile")
//   - status: HTTP status class ("2xx", "4xx", "5xx") or "error"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of calls to the platform API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "status"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts auth trail events successfully persisted.
// Label:
//   - kind: event kind (e.g. "sign_in", "token_rejected")
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of auth audit events persisted, by kind.",
	},
	[]string{"kind"},
)

// AuditQueueDepth tracks pending events per dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of auth events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
