// Package roaring provides per-kind position bitmaps for kind-filtered
// queries using Roaring bitmaps.
package roaring

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/fwojciec/docidx"
)

// Ensure KindIndex implements docidx.KindIndex at compile time.
var _ docidx.KindIndex = (*KindIndex)(nil)

// KindIndex maps each item kind to the bitmap of catalog positions holding
// items of that kind. It is read-only after construction.
type KindIndex struct {
	bitmaps map[docidx.ItemKind]*roaring.Bitmap
}

// NewKindIndex builds the bitmaps for idx.
func NewKindIndex(idx *docidx.Index) *KindIndex {
	k := &KindIndex{bitmaps: make(map[docidx.ItemKind]*roaring.Bitmap)}
	for i, it := range idx.Items() {
		bm, ok := k.bitmaps[it.Kind]
		if !ok {
			bm = roaring.New()
			k.bitmaps[it.Kind] = bm
		}
		bm.Add(uint32(i))
	}
	for _, bm := range k.bitmaps {
		bm.RunOptimize()
	}
	return k
}

// Positions returns the catalog positions of items of kind, ascending.
func (k *KindIndex) Positions(kind docidx.ItemKind) []int {
	bm, ok := k.bitmaps[kind]
	if !ok {
		return nil
	}
	positions := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		positions = append(positions, int(it.Next()))
	}
	return positions
}

// Count returns the number of items of kind.
func (k *KindIndex) Count(kind docidx.ItemKind) int {
	bm, ok := k.bitmaps[kind]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}
