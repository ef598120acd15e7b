package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/roaring"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	var filter *docidx.ItemKind
	if c.Kind != "" {
		kind, err := docidx.ParseKind(c.Kind)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
			return err
		}
		filter = &kind
	}

	lib, err := deps.Libraries.FindLibraryByName(deps.Ctx, c.Name)
	if docidx.ErrorCode(err) == docidx.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: library %q not found. Use 'docidx list' to see stored libraries.\n", c.Name)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	indexes, err := decodeLibrary(lib)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	for _, idx := range indexes {
		kinds := roaring.NewKindIndex(idx)

		fmt.Fprintf(deps.Stdout, "%s  %d items\n", idx.Name(), idx.Len())
		if doc := idx.Doc(); doc != "" {
			fmt.Fprintf(deps.Stdout, "  %s\n", doc)
		}
		for _, kind := range docidx.Kinds {
			if n := kinds.Count(kind); n > 0 {
				fmt.Fprintf(deps.Stdout, "  %-15s %d\n", kind, n)
			}
		}
		fmt.Fprintln(deps.Stdout)

		positions := allPositions(idx)
		if filter != nil {
			positions = kinds.Positions(*filter)
		}
		for _, i := range positions {
			m, err := idx.Display(i)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "%-15s %s", m.Kind, m.Path)
			if m.Signature != "" {
				fmt.Fprintf(deps.Stdout, "  %s", m.Signature)
			}
			fmt.Fprintln(deps.Stdout)
		}
	}
	return nil
}

func allPositions(idx *docidx.Index) []int {
	positions := make([]int, idx.Len())
	for i := range positions {
		positions[i] = i
	}
	return positions
}
