package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/docidx"
	docslog "github.com/fwojciec/docidx/slog"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	reg, err := openRegistry(deps, c.Library)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}
	if len(reg.Names()) == 0 {
		fmt.Fprintln(deps.Stdout, "No libraries found. Use 'docidx add' to store one.")
		return nil
	}

	limit := c.Limit
	if limit == 0 {
		limit = deps.Config.Search.Limit
	}

	searcher := docslog.NewLoggingSearcher(reg, deps.Logger)
	matches, err := searcher.Search(deps.Ctx, docidx.Query{
		Library: c.Library,
		Text:    c.Query,
		Limit:   limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if matches == nil {
			matches = []docidx.DisplayableMatch{}
		}
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q\n", c.Query)
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(deps.Stdout, "%-10s %-15s %s", m.Library, m.Kind, m.Path)
		if m.Signature != "" {
			fmt.Fprintf(deps.Stdout, "  %s", m.Signature)
		}
		fmt.Fprintln(deps.Stdout)
		if m.Summary != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", m.Summary)
		}
	}
	return nil
}
