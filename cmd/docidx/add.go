package main

import (
	"bytes"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/json"
	"github.com/fwojciec/docidx/sqlite"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	indexes, source, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	for _, idx := range indexes {
		if err := c.store(deps, idx, source); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
			return err
		}
	}
	return nil
}

// store saves idx as a single-library bundle. A stored library with the same
// content is left alone; a different one is replaced only with --force.
func (c *AddCmd) store(deps *Dependencies, idx *docidx.Index, source string) error {
	data, err := json.Encode(idx)
	if err != nil {
		return err
	}

	existing, err := deps.Libraries.FindLibraryByName(deps.Ctx, idx.Name())
	switch {
	case docidx.ErrorCode(err) == docidx.ENOTFOUND:
	case err != nil:
		return err
	case existing.ContentHash == sqlite.HashContent(data):
		fmt.Fprintf(deps.Stdout, "Library %q unchanged\n", idx.Name())
		return nil
	case !c.Force:
		return docidx.Errorf(docidx.ECONFLICT, "library %q already stored; use --force to replace it", idx.Name())
	default:
		if err := deps.Libraries.DeleteLibrary(deps.Ctx, existing.ID); err != nil {
			return err
		}
	}

	lib := &docidx.Library{
		Name:      idx.Name(),
		SourceURL: source,
		ItemCount: idx.Len(),
		Data:      data,
	}
	if err := deps.Libraries.CreateLibrary(deps.Ctx, lib); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added library %q (%d items)\n", lib.Name, lib.ItemCount)
	return nil
}

// load decodes the source into indexes and returns the location they came
// from. Documentation pages are followed to the index script they reference.
func (c *AddCmd) load(deps *Dependencies) ([]*docidx.Index, string, error) {
	if !isURL(c.Source) {
		indexes, err := deps.Loader.ReadFile(c.Source)
		if err != nil {
			return nil, "", err
		}
		abs, err := filepath.Abs(c.Source)
		if err != nil {
			abs = c.Source
		}
		return indexes, abs, nil
	}

	source := c.Source
	body, err := deps.Fetcher.Fetch(deps.Ctx, source)
	if err != nil {
		return nil, "", err
	}
	if looksLikeHTML(body) {
		script, err := deps.Locator.Locate(body, source)
		if err != nil {
			return nil, "", err
		}
		fmt.Fprintf(deps.Stdout, "  Found index script %s\n", script)
		if body, err = deps.Fetcher.Fetch(deps.Ctx, script); err != nil {
			return nil, "", err
		}
		source = script
	}

	indexes, err := decodeRemote(deps, source, []byte(body))
	if err != nil {
		return nil, "", err
	}
	return indexes, source, nil
}

// decodeRemote picks a decoder by the URL's extension, falling back to the
// body's first character when the extension is unknown.
func decodeRemote(deps *Dependencies, source string, body []byte) ([]*docidx.Index, error) {
	if u, err := url.Parse(source); err == nil {
		if dec, err := deps.Loader.Decoder(u.Path); err == nil {
			return dec.Decode(body)
		}
	}
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		return json.Decode(body)
	}
	return json.DecodeScript(body)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func looksLikeHTML(body string) bool {
	head := strings.ToLower(strings.TrimSpace(body))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.Contains(head, "<html")
}
