// Package fs provides file-based loading and writing of serialized indexes.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/docidx"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files LoadDir decodes at once.
const DefaultConcurrency = 4

// Loader reads index files and decodes them by file extension.
type Loader struct {
	// Decoders maps a lower-case extension (".json", ".js") to its decoder.
	Decoders map[string]docidx.Decoder

	// Concurrency limits parallel decoding in LoadDir.
	Concurrency int
}

// NewLoader creates a Loader with the given decoders.
func NewLoader(decoders map[string]docidx.Decoder) *Loader {
	return &Loader{Decoders: decoders, Concurrency: DefaultConcurrency}
}

// Decoder returns the decoder for path's extension.
// Returns EINVALID if no decoder handles it.
func (l *Loader) Decoder(path string) (docidx.Decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := l.Decoders[ext]
	if !ok {
		return nil, docidx.Errorf(docidx.EINVALID, "no decoder for %q files", ext)
	}
	return dec, nil
}

// ReadFile loads the indexes serialized in path.
func (l *Loader) ReadFile(path string) ([]*docidx.Index, error) {
	dec, err := l.Decoder(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	indexes, err := dec.Decode(data)
	if err != nil {
		return nil, docidx.Errorf(docidx.ErrorCode(err), "%s: %s", path, docidx.ErrorMessage(err))
	}
	return indexes, nil
}

// LoadDir loads every file in dir that has a decoder. Files are decoded
// concurrently; the result is ordered by file name, then by position within
// each file. Any failure fails the whole load.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]*docidx.Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := l.Decoders[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)

	loaded := make([][]*docidx.Index, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, l.Concurrency))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			indexes, err := l.ReadFile(path)
			if err != nil {
				return err
			}
			loaded[i] = indexes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var indexes []*docidx.Index
	for _, group := range loaded {
		indexes = append(indexes, group...)
	}
	return indexes, nil
}
