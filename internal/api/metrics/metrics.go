// Package metrics defines and registers all custom Prometheus metrics
// for the payroll API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init
// via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payroll"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// TokensIssuedTotal counts session tokens signed, by grant path.
// Label:
//   - grant: "signup", "signin", or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued, by grant path.",
	},
	[]string{"grant"},
)

// TokenVerificationsTotal counts verify-endpoint outcomes.
// Label:
//   - result: "ok", "invalid", or "not_found"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of token verifications, by result.",
	},
	[]string{"result"},
)

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "ok", "invalid_credentials", or "rate_limited"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// RefreshesTotal counts token refresh attempts.
// Label:
//   - result: "ok" or "invalid"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refreshes_total",
		Help:      "Total number of token refresh attempts, by result.",
	},
	[]string{"result"},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsSubmittedTotal counts newly filed work sessions.
var ReportsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_submitted_total",
		Help:      "Total number of work-session reports submitted.",
	},
)

// ReportsDecidedTotal counts review decisions.
// Label:
//   - status: "approved" or "rejected"
var ReportsDecidedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_decided_total",
		Help:      "Total number of work-session reports decided, by outcome.",
	},
	[]string{"status"},
)

// AuditQueueDepth tracks events waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
