// Package prometheus instruments docidx services with Prometheus metrics.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/docidx"
	"github.com/prometheus/client_golang/prometheus"
)

// Ensure Searcher implements docidx.Searcher at compile time.
var _ docidx.Searcher = (*Searcher)(nil)

// Searcher wraps a docidx.Searcher and records query counts, latency and
// result sizes.
type Searcher struct {
	next docidx.Searcher

	queries *prometheus.CounterVec
	latency prometheus.Histogram
	results prometheus.Histogram
}

// NewSearcher creates a Searcher and registers its collectors with reg.
func NewSearcher(next docidx.Searcher, reg prometheus.Registerer) (*Searcher, error) {
	s := &Searcher{
		next: next,
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docidx_search_queries_total",
				Help: "Total search queries by result type (hit, zero_result, error).",
			},
			[]string{"result_type"},
		),
		latency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docidx_search_duration_seconds",
				Help:    "Search latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
		),
		results: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docidx_search_results",
				Help:    "Number of results returned per search.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200},
			},
		),
	}

	for _, c := range []prometheus.Collector{s.queries, s.latency, s.results} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Search delegates to the wrapped searcher and records the outcome.
func (s *Searcher) Search(ctx context.Context, q docidx.Query) ([]docidx.DisplayableMatch, error) {
	begin := time.Now()
	matches, err := s.next.Search(ctx, q)
	s.latency.Observe(time.Since(begin).Seconds())

	switch {
	case err != nil:
		s.queries.WithLabelValues("error").Inc()
	case len(matches) == 0:
		s.queries.WithLabelValues("zero_result").Inc()
		s.results.Observe(0)
	default:
		s.queries.WithLabelValues("hit").Inc()
		s.results.Observe(float64(len(matches)))
	}
	return matches, err
}
