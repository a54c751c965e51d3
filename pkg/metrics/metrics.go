package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EventsApplied counts events applied to a book, by operation (insert/erase)
var EventsApplied = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "twap_events_applied_total",
		Help: "Total number of order book events applied",
	},
	[]string{"op"},
)

// MalformedEvents counts rejected event lines or payloads
var MalformedEvents = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "twap_malformed_events_total",
		Help: "Total number of events rejected as malformed",
	},
)

// StaleEntriesDiscarded counts lazily invalidated heap entries dropped by max queries
var StaleEntriesDiscarded = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "twap_stale_entries_discarded_total",
		Help: "Total number of stale price heap entries discarded",
	},
)

var (
	ReplaysCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twap_replays_completed_total",
			Help: "Total number of replays run to completion, by source",
		},
		[]string{"source"},
	)

	ReplayLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "twap_replay_latency_seconds",
			Help:    "Latency in seconds to replay a full event log",
			Buckets: prometheus.DefBuckets,
		},
	)

	LiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "twap_live_sessions",
			Help: "Number of open incremental replay sessions",
		},
	)
)

func init() {
	prometheus.MustRegister(EventsApplied, MalformedEvents, StaleEntriesDiscarded)
	prometheus.MustRegister(ReplaysCompleted, ReplayLatency, LiveSessions)
}
