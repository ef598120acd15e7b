package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return docidx.Errorf(docidx.EINVALID, "use --force to confirm deletion")
	}

	lib, err := deps.Libraries.FindLibraryByName(deps.Ctx, c.Name)
	if docidx.ErrorCode(err) == docidx.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: library %q not found. Use 'docidx list' to see stored libraries.\n", c.Name)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	if err := deps.Libraries.DeleteLibrary(deps.Ctx, lib.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted library %q\n", lib.Name)
	return nil
}
