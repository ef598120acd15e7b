package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/fs"
	"github.com/fwojciec/docidx/json"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	if len(c.Inputs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: at least one input file required\n")
		return docidx.Errorf(docidx.EINVALID, "at least one input file required")
	}

	b := docidx.NewBuilder()
	var indexes []*docidx.Index
	items := 0
	for _, input := range c.Inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		libs, err := json.ParseRaw(data)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", input, docidx.ErrorMessage(err))
			return err
		}
		for _, lib := range libs {
			idx, err := b.Build(lib)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", input, docidx.ErrorMessage(err))
				return err
			}
			indexes = append(indexes, idx)
			items += idx.Len()
		}
	}

	data, err := json.Encode(indexes...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}
	if err := fs.WriteFile(c.Output, data); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Built %d libraries (%d items) into %s\n", len(indexes), items, c.Output)
	return nil
}
