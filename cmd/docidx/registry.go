package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/bloom"
	"github.com/fwojciec/docidx/json"
	"github.com/fwojciec/docidx/roaring"
)

// openRegistry decodes stored libraries into a registry with the bloom term
// filter and roaring kind index attached. An empty name loads every library.
func openRegistry(deps *Dependencies, name string) (*docidx.Registry, error) {
	policy, err := deps.Config.Search.Policy()
	if err != nil {
		return nil, err
	}

	reg := docidx.NewRegistry()
	reg.Policy = policy
	reg.TermFilterFunc = func(idx *docidx.Index) docidx.TermFilter {
		return bloom.NewTermFilter(idx, bloom.DefaultFalsePositiveRate)
	}
	reg.KindIndexFunc = func(idx *docidx.Index) docidx.KindIndex {
		return roaring.NewKindIndex(idx)
	}

	var libs []*docidx.Library
	if name != "" {
		lib, err := deps.Libraries.FindLibraryByName(deps.Ctx, name)
		if err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	} else {
		libs, err = deps.Libraries.FindLibraries(deps.Ctx, docidx.LibraryFilter{})
		if err != nil {
			return nil, err
		}
	}

	for _, lib := range libs {
		indexes, err := decodeLibrary(lib)
		if err != nil {
			return nil, err
		}
		for _, idx := range indexes {
			if err := reg.Register(idx); err != nil {
				return nil, err
			}
		}
	}
	return reg, nil
}

// decodeLibrary decodes the bundle stored for lib.
func decodeLibrary(lib *docidx.Library) ([]*docidx.Index, error) {
	indexes, err := json.Decode(lib.Data)
	if err != nil {
		return nil, fmt.Errorf("library %q: %w", lib.Name, err)
	}
	return indexes, nil
}
