// Package metrics defines and registers all custom Prometheus metrics for
// the rental marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

// ── Contract metrics ──────────────────────────────────────────────────────────

// ContractsCreatedTotal counts newly created contracts.
var ContractsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contracts_created_total",
		Help:      "Total number of contracts created.",
	},
)

// ContractMutationsTotal counts contract write operations by kind.
// Label:
//   - operation: "save", "update", "agree", or "delete"
var ContractMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contract_mutations_total",
		Help:      "Total number of contract write operations, by operation.",
	},
	[]string{"operation"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditEventsWrittenTotal counts audit events successfully persisted.
// Label:
//   - action: the audited action (e.g. "contract_saved")
var AuditEventsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_written_total",
		Help:      "Total number of audit events persisted, by action.",
	},
	[]string{"action"},
)

// AuditErrorsTotal counts audit events that failed to persist.
var AuditErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit events that failed to persist.",
	},
)

// AuditEventsDroppedTotal counts audit events dropped because the worker
// channel was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to a full queue.",
	},
)

// AuditQueueDepth tracks the current number of events waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each worker channel.",
	},
	[]string{"worker_id"},
)
