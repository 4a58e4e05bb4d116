package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Registry *prometheus.Registry

	SyncsTotal      *prometheus.CounterVec
	BattlesInserted prometheus.Counter
	BattlesDeleted  prometheus.Counter
	RateLimitHits   prometheus.Counter
	FleetRuns       prometheus.Counter
	SyncDuration    prometheus.Histogram
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		SyncsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "royaletracker_syncs_total",
			Help: "Account sync attempts by outcome.",
		}, []string{"outcome"}),
		BattlesInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "royaletracker_battles_inserted_total",
			Help: "New battle records persisted.",
		}),
		BattlesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "royaletracker_battles_deleted_total",
			Help: "Battle records trimmed by retention.",
		}),
		RateLimitHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "royaletracker_rate_limit_hits_total",
			Help: "Upstream rate-limit responses observed during fleet syncs.",
		}),
		FleetRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "royaletracker_fleet_runs_total",
			Help: "Fleet sync invocations.",
		}),
		SyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "royaletracker_sync_duration_seconds",
			Help:    "Per-account sync duration.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.SyncsTotal,
		m.BattlesInserted,
		m.BattlesDeleted,
		m.RateLimitHits,
		m.FleetRuns,
		m.SyncDuration,
	)

	return m
}
