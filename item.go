package docidx

import "strings"

// OwnerRef refers to an entry of the parent table. The zero value is
// NoOwner.
type OwnerRef int

// NoOwner marks an item that does not belong to a parent type.
const NoOwner OwnerRef = 0

// OwnerAt returns the reference to parent table position pos.
func OwnerAt(pos int) OwnerRef {
	if pos < 0 {
		return OwnerRef(pos)
	}
	return OwnerRef(pos + 1)
}

// Position returns the parent table position o refers to, and false for
// NoOwner.
func (o OwnerRef) Position() (int, bool) {
	switch {
	case o == NoOwner:
		return 0, false
	case o < 0:
		return int(o), true
	}
	return int(o) - 1, true
}

// Item is one documentation-indexable entity in the item catalog.
type Item struct {
	Kind ItemKind
	Name StringRef

	// Path is the module path of the item. In a loaded index it is never
	// empty: empty paths in the input inherit the preceding item's path.
	Path StringRef

	Summary StringRef

	// Owner is the parent entry the item belongs to. The zero value means
	// the item has no owner.
	Owner OwnerRef

	Signature *Signature
}

// HasOwner reports whether the item belongs to a parent type.
func (it Item) HasOwner() bool {
	return it.Owner != NoOwner
}

// ParentEntry describes a type or interface that owns member items.
type ParentEntry struct {
	Kind ItemKind
	Name StringRef
}

// Signature is the structured type descriptor of a callable item.
type Signature struct {
	Params []StringRef
	// Return is EmptyString when nothing is returned.
	Return StringRef
}

// Format renders the signature as "fn(a, b) -> r" using strs.
func (s *Signature) Format(strs StringReader) string {
	if s == nil {
		return ""
	}
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = strs.Text(p)
	}
	out := "fn(" + strings.Join(params, ", ") + ")"
	if s.Return != EmptyString {
		out += " -> " + strs.Text(s.Return)
	}
	return out
}
