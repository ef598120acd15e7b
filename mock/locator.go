package mock

import "github.com/fwojciec/docidx"

var _ docidx.ScriptLocator = (*ScriptLocator)(nil)

// ScriptLocator is a mock implementation of docidx.ScriptLocator.
type ScriptLocator struct {
	LocateFn func(html, pageURL string) (string, error)
}

func (l *ScriptLocator) Locate(html, pageURL string) (string, error) {
	return l.LocateFn(html, pageURL)
}
