package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docidx"
)

// Ensure RetryFetcher implements docidx.Fetcher at compile time.
var _ docidx.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher retries failed fetches with a fixed backoff schedule.
// Application errors (missing page, invalid URL) are returned at once.
type RetryFetcher struct {
	next docidx.Fetcher

	// Delays holds the wait before each retry. One attempt is made per
	// delay after the first.
	Delays []time.Duration

	// Logger receives a warning per retry. Optional.
	Logger *slog.Logger
}

// NewRetryFetcher wraps next with DefaultRetryDelays.
func NewRetryFetcher(next docidx.Fetcher, logger *slog.Logger) *RetryFetcher {
	return &RetryFetcher{next: next, Delays: DefaultRetryDelays(), Logger: logger}
}

// Fetch calls the wrapped fetcher until it succeeds, returns an application
// error, or runs out of retries.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.Delays); attempt++ {
		body, err := f.next.Fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt == len(f.Delays) || !retryable(err) {
			break
		}
		if f.Logger != nil {
			f.Logger.Warn("fetch retry", "url", url, "attempt", attempt+2, "error", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.Delays[attempt]):
		}
	}
	return "", lastErr
}

// Close closes the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}

func retryable(err error) bool {
	switch docidx.ErrorCode(err) {
	case docidx.ENOTFOUND, docidx.EINVALID:
		return false
	}
	return true
}
