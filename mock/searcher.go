package mock

import (
	"context"

	"github.com/fwojciec/docidx"
)

var _ docidx.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of docidx.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, q docidx.Query) ([]docidx.DisplayableMatch, error)
}

func (s *Searcher) Search(ctx context.Context, q docidx.Query) ([]docidx.DisplayableMatch, error) {
	return s.SearchFn(ctx, q)
}
