package docidx

import "context"

// Fetcher retrieves the body of documentation assets (pages and index
// scripts) from URLs.
type Fetcher interface {
	// Fetch returns the body served at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases resources held by the fetcher.
	Close() error
}
