package docidx

import (
	"iter"
	"sync/atomic"
)

// Index is the immutable, loaded documentation index of one library.
//
// An Index is safe for concurrent use. The only state written after
// construction is the path cache, which is filled once per item.
type Index struct {
	name    string
	doc     StringRef
	items   []Item
	parents []ParentEntry
	strings *StringTable

	paths []atomic.Pointer[resolvedPath]
}

// NewIndex validates the records and returns an index over them.
//
// Items with an empty path inherit the nearest preceding non-empty path; the
// first item must carry a path. Returns EMALFORMED for records with missing
// fields and EOUTOFRANGE for string, owner or kind references outside their
// tables. No index is returned on error.
func NewIndex(name string, doc StringRef, items []Item, parents []ParentEntry, strs *StringTable) (*Index, error) {
	if name == "" {
		return nil, Errorf(EMALFORMED, "library name required")
	}
	if strs == nil {
		return nil, Errorf(EINVALID, "string table required")
	}
	if !strs.Contains(doc) {
		return nil, Errorf(EOUTOFRANGE, "library %q: doc string handle %d out of range", name, doc)
	}

	ps := make([]ParentEntry, len(parents))
	for i, p := range parents {
		if !p.Kind.Valid() {
			return nil, Errorf(EOUTOFRANGE, "library %q: parent %d: kind code %d out of range", name, i, int(p.Kind))
		}
		if !strs.Contains(p.Name) {
			return nil, Errorf(EOUTOFRANGE, "library %q: parent %d: name handle %d out of range", name, i, p.Name)
		}
		if p.Name == EmptyString {
			return nil, Errorf(EMALFORMED, "library %q: parent %d: name required", name, i)
		}
		ps[i] = p
	}

	its := make([]Item, len(items))
	path := EmptyString
	for i, it := range items {
		if err := validateItem(strs, it, len(ps)); err != nil {
			return nil, Errorf(ErrorCode(err), "library %q: item %d: %s", name, i, ErrorMessage(err))
		}
		if it.Path == EmptyString {
			if i == 0 {
				return nil, Errorf(EMALFORMED, "library %q: item 0: first item must carry a path", name)
			}
			it.Path = path
		}
		path = it.Path
		if it.Signature != nil {
			sig := *it.Signature
			sig.Params = append([]StringRef(nil), sig.Params...)
			it.Signature = &sig
		}
		its[i] = it
	}

	return &Index{
		name:    name,
		doc:     doc,
		items:   its,
		parents: ps,
		strings: strs,
		paths:   make([]atomic.Pointer[resolvedPath], len(its)),
	}, nil
}

func validateItem(strs *StringTable, it Item, parents int) error {
	if !it.Kind.Valid() {
		return Errorf(EOUTOFRANGE, "kind code %d out of range", int(it.Kind))
	}
	for _, ref := range []StringRef{it.Name, it.Path, it.Summary} {
		if !strs.Contains(ref) {
			return Errorf(EOUTOFRANGE, "string handle %d out of range", ref)
		}
	}
	if it.Name == EmptyString {
		return Errorf(EMALFORMED, "name required")
	}
	if pos, ok := it.Owner.Position(); ok && (pos < 0 || pos >= parents) {
		return Errorf(EOUTOFRANGE, "owner %d outside parent table of %d entries", pos, parents)
	}
	if sig := it.Signature; sig != nil {
		for _, ref := range sig.Params {
			if !strs.Contains(ref) {
				return Errorf(EOUTOFRANGE, "signature string handle %d out of range", ref)
			}
		}
		if !strs.Contains(sig.Return) {
			return Errorf(EOUTOFRANGE, "signature string handle %d out of range", sig.Return)
		}
	}
	return nil
}

// Name returns the library name the index is keyed by.
func (idx *Index) Name() string {
	return idx.name
}

// Doc returns the library's documentation summary.
func (idx *Index) Doc() string {
	return idx.strings.Text(idx.doc)
}

// DocRef returns the handle of the documentation summary.
func (idx *Index) DocRef() StringRef {
	return idx.doc
}

// Strings returns a read-only view of the string table the index resolves
// against. The table may be shared with other indexes.
func (idx *Index) Strings() StringReader {
	return idx.strings
}

// Len returns the number of items in the catalog.
func (idx *Index) Len() int {
	return len(idx.items)
}

// Item returns the item at catalog position i.
// Returns EOUTOFRANGE if i is not a valid position.
func (idx *Index) Item(i int) (Item, error) {
	if i < 0 || i >= len(idx.items) {
		return Item{}, Errorf(EOUTOFRANGE, "item %d outside catalog of %d items", i, len(idx.items))
	}
	return idx.items[i], nil
}

// Items iterates the catalog in canonical order. Every iteration replays the
// same order from the first item.
func (idx *Index) Items() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		for i, it := range idx.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// ParentLen returns the number of entries in the parent table.
func (idx *Index) ParentLen() int {
	return len(idx.parents)
}

// Parent returns the parent entry at position i.
// Returns EOUTOFRANGE if i is not a valid position.
func (idx *Index) Parent(i int) (ParentEntry, error) {
	if i < 0 || i >= len(idx.parents) {
		return ParentEntry{}, Errorf(EOUTOFRANGE, "parent %d outside parent table of %d entries", i, len(idx.parents))
	}
	return idx.parents[i], nil
}

// Text resolves a string handle against the index's table.
func (idx *Index) Text(ref StringRef) string {
	return idx.strings.Text(ref)
}

// Display returns the renderer-facing view of the item at position i.
func (idx *Index) Display(i int) (DisplayableMatch, error) {
	it, err := idx.Item(i)
	if err != nil {
		return DisplayableMatch{}, err
	}
	return DisplayableMatch{
		Library:   idx.name,
		Path:      idx.Path(i),
		Name:      idx.strings.Text(it.Name),
		Kind:      it.Kind,
		Summary:   idx.strings.Text(it.Summary),
		Signature: it.Signature.Format(idx.strings),
	}, nil
}
