// Package metrics records search pipeline activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/meow/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.SearchMetrics = (*Recorder)(nil)

// SearchBuckets covers searches from a few milliseconds up to a slow
// embedding call followed by a resolver round trip.
var SearchBuckets = []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

// Outcome label values.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
	outcomeEmpty = "empty"
)

// Recorder owns a private registry so that several instances can coexist.
type Recorder struct {
	registry *prometheus.Registry

	embeddings     *prometheus.CounterVec
	indexed        *prometheus.CounterVec
	searches       *prometheus.CounterVec
	ambiguous      prometheus.Counter
	decisions      *prometheus.CounterVec
	searchDuration prometheus.Histogram
}

// New creates a recorder with every meow metric registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		embeddings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meow_embedding_requests_total",
				Help: "Embedding requests by outcome",
			},
			[]string{"outcome"},
		),
		indexed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meow_files_indexed_total",
				Help: "Files processed by the indexer by outcome",
			},
			[]string{"outcome"},
		),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meow_searches_total",
				Help: "Searches by outcome",
			},
			[]string{"outcome"},
		),
		ambiguous: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "meow_searches_ambiguous_total",
				Help: "Searches whose top two candidates were too close",
			},
		),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meow_resolver_decisions_total",
				Help: "Ambiguity resolver invocations by outcome",
			},
			[]string{"outcome"},
		),
		searchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "meow_search_duration_seconds",
				Help:    "Search duration",
				Buckets: SearchBuckets,
			},
		),
	}

	r.registry.MustRegister(
		r.embeddings,
		r.indexed,
		r.searches,
		r.ambiguous,
		r.decisions,
		r.searchDuration,
		collectors.NewGoCollector(),
	)
	return r
}

// ObserveEmbedding records one embedding request.
func (r *Recorder) ObserveEmbedding(err error) {
	r.embeddings.WithLabelValues(outcome(err)).Inc()
}

// ObserveSearch records a finished search.
func (r *Recorder) ObserveSearch(d time.Duration, results int, ambiguous bool, err error) {
	label := outcome(err)
	if err == nil && results == 0 {
		label = outcomeEmpty
	}
	r.searches.WithLabelValues(label).Inc()
	r.searchDuration.Observe(d.Seconds())
	if ambiguous {
		r.ambiguous.Inc()
	}
}

// ObserveDecision records a resolver outcome.
func (r *Recorder) ObserveDecision(outcome string) {
	r.decisions.WithLabelValues(outcome).Inc()
}

// ObserveIndexed records a file embedded during indexing.
func (r *Recorder) ObserveIndexed() {
	r.indexed.WithLabelValues(outcomeOK).Inc()
}

// ObserveIndexFailure records a file skipped during indexing.
func (r *Recorder) ObserveIndexFailure() {
	r.indexed.WithLabelValues(outcomeError).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for inspection.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeOK
}
