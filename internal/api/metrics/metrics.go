// Package metrics defines and registers all custom Prometheus metrics for
// the account system. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the /metrics endpoint is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsIssuedTotal counts opaque session tokens issued. Reissuing for an
// account counts again; the old token is implicitly invalidated.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// AuthDenialsTotal counts authorization denials by kind.
// Label:
//   - kind: "permission", "resource", or "unknown_role"
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of authorization denials, by kind.",
	},
	[]string{"kind"},
)

// ── Collaborator metrics ──────────────────────────────────────────────────────

// NotificationsSentTotal counts notification dispatch attempts.
// Labels:
//   - channel: "email", "sms", or "push"
//   - result: "sent" or "failed"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notification dispatches, by channel and result.",
	},
	[]string{"channel", "result"},
)

// PaymentsProcessedTotal counts processed payments.
// Labels:
//   - method: "credit_card" or "paypal"
//   - result: "success" or "failure"
var PaymentsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_processed_total",
		Help:      "Total number of payments processed, by method and result.",
	},
	[]string{"method", "result"},
)

// ── Analytics pipeline metrics ────────────────────────────────────────────────

// AnalyticsEventsTotal counts analytics events recorded by the pipeline.
// Label:
//   - event: event name (e.g. "login", "account_registered")
var AnalyticsEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_events_total",
		Help:      "Total number of analytics events recorded, by event name.",
	},
	[]string{"event"},
)

// AnalyticsQueueDepth tracks the current number of events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AnalyticsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "analytics_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
