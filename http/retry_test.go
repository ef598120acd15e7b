package http_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/docidx"
	dochttp "github.com/fwojciec/docidx/http"
	"github.com/fwojciec/docidx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDelays is used for fast unit tests.
var noDelays = []time.Duration{0, 0, 0}

func TestRetryFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				attempts++
				return "var searchIndex={};", nil
			},
		}
		f := dochttp.NewRetryFetcher(inner, nil)
		f.Delays = noDelays

		body, err := f.Fetch(context.Background(), "https://example.com/search-index.js")

		require.NoError(t, err)
		assert.Equal(t, "var searchIndex={};", body)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				attempts++
				if attempts < 3 {
					return "", errors.New("HTTP 502")
				}
				return "ok", nil
			},
		}
		f := dochttp.NewRetryFetcher(inner, nil)
		f.Delays = noDelays

		body, err := f.Fetch(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "ok", body)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after the last delay", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				attempts++
				return "", errors.New("connection reset")
			},
		}
		f := dochttp.NewRetryFetcher(inner, nil)
		f.Delays = noDelays

		_, err := f.Fetch(context.Background(), "https://example.com")

		require.EqualError(t, err, "connection reset")
		assert.Equal(t, 4, attempts)
	})

	t.Run("does not retry missing pages", func(t *testing.T) {
		t.Parallel()

		var attempts int
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				attempts++
				return "", docidx.Errorf(docidx.ENOTFOUND, "%s not found", url)
			},
		}
		f := dochttp.NewRetryFetcher(inner, nil)
		f.Delays = noDelays

		_, err := f.Fetch(context.Background(), "https://example.com/missing")

		assert.Equal(t, docidx.ENOTFOUND, docidx.ErrorCode(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops waiting when the context ends", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				cancel()
				return "", errors.New("timeout")
			},
		}
		f := dochttp.NewRetryFetcher(inner, nil)
		f.Delays = []time.Duration{time.Hour}

		_, err := f.Fetch(ctx, "https://example.com")

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("closes the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		var closed bool
		inner := &mock.Fetcher{CloseFn: func() error {
			closed = true
			return nil
		}}

		require.NoError(t, dochttp.NewRetryFetcher(inner, nil).Close())
		assert.True(t, closed)
	})
}
