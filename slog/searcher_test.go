package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/mock"
	docslog "github.com/fwojciec/docidx/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs query at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Searcher{
			SearchFn: func(_ context.Context, q docidx.Query) ([]docidx.DisplayableMatch, error) {
				return []docidx.DisplayableMatch{{Name: "Graph"}, {Name: "GraphExt"}}, nil
			},
		}

		searcher := docslog.NewLoggingSearcher(inner, logger)
		matches, err := searcher.Search(context.Background(), docidx.Query{Library: "graphtest", Text: "graph", Limit: 10})

		require.NoError(t, err)
		assert.Len(t, matches, 2)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "msg=search")
		assert.Contains(t, output, "query=graph")
		assert.Contains(t, output, "library=graphtest")
		assert.Contains(t, output, "count=2")
	})

	t.Run("stays quiet at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			SearchFn: func(context.Context, docidx.Query) ([]docidx.DisplayableMatch, error) {
				return nil, nil
			},
		}

		_, err := docslog.NewLoggingSearcher(inner, logger).Search(context.Background(), docidx.Query{Text: "x", Limit: 1})
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("logs errors as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			SearchFn: func(context.Context, docidx.Query) ([]docidx.DisplayableMatch, error) {
				return nil, docidx.Errorf(docidx.ENOTREADY, "library %q not loaded", "std")
			},
		}

		_, err := docslog.NewLoggingSearcher(inner, logger).Search(context.Background(), docidx.Query{Library: "std", Text: "vec", Limit: 5})
		assert.Equal(t, docidx.ENOTREADY, docidx.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "not_ready")
	})
}
