// Package metrics defines and registers all custom Prometheus metrics for
// the bounty platform API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bounty"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthRequestsTotal counts authentication attempts on protected routes.
// Label:
//   - outcome: "ok", "unauthorized" (resolver rejected the credential), or
//     "orphaned" (valid credential, no backing profile)
var AuthRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_requests_total",
		Help:      "Total number of authentication attempts, by outcome.",
	},
	[]string{"outcome"},
)

// GuardDenialsTotal counts guard-chain rejections.
// Label:
//   - guard: the name of the first guard that failed (e.g. "verified")
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of requests rejected by a guard, by guard name.",
	},
	[]string{"guard"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEntriesTotal counts audit entry dispositions.
// Label:
//   - result: "written", "failed" (store write error, swallowed), or
//     "dropped" (queue full)
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit entries, by disposition.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the current number of entries waiting in each
// audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each worker channel.",
	},
	[]string{"worker_id"},
)
