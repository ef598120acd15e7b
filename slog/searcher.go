// Package slog provides logging decorators for docidx services using log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docidx"
)

// Ensure LoggingSearcher implements docidx.Searcher.
var _ docidx.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with debug logging of every query.
type LoggingSearcher struct {
	next   docidx.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next docidx.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the query.
func (s *LoggingSearcher) Search(ctx context.Context, q docidx.Query) (matches []docidx.DisplayableMatch, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "search",
			"query", q.Text,
			"library", q.Library,
			"limit", q.Limit,
			"count", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, q)
}
