// Package metrics defines and registers all custom Prometheus metrics for
// the bar system API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "barsystem"

// LoginsTotal counts authentication attempts.
// Labels:
//   - kind: "operator" or "staff"
//   - result: "success", "invalid", "forbidden", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// CredentialsIssuedTotal counts signed credentials handed out.
// Label:
//   - kind: "access", "refresh", "invite"
var CredentialsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credentials_issued_total",
		Help:      "Total number of bearer credentials issued, by kind.",
	},
	[]string{"kind"},
)

// OneTimeTokensTotal counts one-time token lifecycle events.
// Labels:
//   - purpose: "invite" or "reset"
//   - event: "issued", "redeemed", "rejected"
var OneTimeTokensTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "one_time_tokens_total",
		Help:      "Total number of one-time token events, by purpose and event.",
	},
	[]string{"purpose", "event"},
)

// DeliveriesTotal counts out-of-band deliveries attempted by the dispatcher.
// Labels:
//   - kind: "invite_mail", "reset_mail", "chat"
//   - result: "ok" or "error"
var DeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deliveries_total",
		Help:      "Total number of out-of-band deliveries, by kind and result.",
	},
	[]string{"kind", "result"},
)

// DeliveryQueueDepth tracks pending deliveries in each dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var DeliveryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "delivery_queue_depth",
		Help:      "Current number of deliveries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
