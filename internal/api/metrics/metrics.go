// Package metrics defines the custom Prometheus metrics for the marketplace
// API. It is the single source of truth for metric names, labels, and help
// strings.
//
// Metrics registered here use the default Prometheus registry via promauto,
// so importing the package is enough; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// RegistrationsTotal counts completed account registrations.
// Label:
//   - role: "influencer" or "client"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// ProjectsCreatedTotal counts projects posted by clients.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// BidsPlacedTotal counts bid placement attempts.
// Label:
//   - result: "created", "duplicate", "project_not_open" or "error"
var BidsPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_placed_total",
		Help:      "Total number of bid placement attempts, by result.",
	},
	[]string{"result"},
)

// BidTransitionsTotal counts lifecycle transition attempts on bids.
// Labels:
//   - action: "accept", "reject" or "withdraw"
//   - result: "ok", "invalid_transition", "forbidden", "not_found" or "error"
var BidTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bid_transitions_total",
		Help:      "Total number of bid lifecycle transition attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// QueriesSubmittedTotal counts contact-query submissions.
// Label:
//   - result: "created" or "duplicate"
var QueriesSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_submitted_total",
		Help:      "Total number of contact query submissions, by dedup result.",
	},
	[]string{"result"},
)
