package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	libs, err := deps.Libraries.FindLibraries(deps.Ctx, docidx.LibraryFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	if len(libs) == 0 {
		fmt.Fprintln(deps.Stdout, "No libraries found. Use 'docidx add' to store one.")
		return nil
	}

	for _, lib := range libs {
		fmt.Fprintf(deps.Stdout, "%s  %d items  %s\n", lib.Name, lib.ItemCount, lib.SourceURL)
	}

	return nil
}
