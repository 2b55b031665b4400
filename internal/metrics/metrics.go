// Package metrics holds the Prometheus collectors for backlog enrichment runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeSkipped  = "skipped"
)

var (
	SourceLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backlog_source_lookups_total",
		Help: "Total number of lookups against each metadata source.",
	}, []string{"source", "outcome"})

	EnrichDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "backlog_enrich_duration_seconds",
		Help:    "Duration of a full game enrichment in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	GamesTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "backlog_games_total",
		Help: "Number of games in the vault by status.",
	}, []string{"status"})
)

// RecordLookup counts one lookup against source.
func RecordLookup(source, outcome string) {
	SourceLookups.WithLabelValues(source, outcome).Inc()
}

// RecordEnrichDuration records the time taken to enrich one game.
func RecordEnrichDuration(start time.Time) {
	EnrichDuration.Observe(time.Since(start).Seconds())
}

// SetGameCounts replaces the per-status game gauges.
func SetGameCounts(counts map[string]int) {
	GamesTotal.Reset()
	for status, n := range counts {
		GamesTotal.WithLabelValues(status).Set(float64(n))
	}
}

// WriteTextfile dumps the default registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
