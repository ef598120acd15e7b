package docidx

import "strings"

// PathSeparator joins path segments in resolved paths.
const PathSeparator = "::"

// resolvedPath holds the display and case-folded forms of an item's path.
type resolvedPath struct {
	full         string
	parent       string
	folded       string
	foldedParent string
	foldedName   string
}

// Path returns the fully qualified path of the item at position i: its module
// path, the owner's name for member items, and its own name. Returns "" for
// positions outside the catalog.
func (idx *Index) Path(i int) string {
	if i < 0 || i >= len(idx.items) {
		return ""
	}
	return idx.resolved(i).full
}

// ParentPath returns the qualifier of the item at position i: its module path
// followed by the owner's name for member items.
func (idx *Index) ParentPath(i int) string {
	if i < 0 || i >= len(idx.items) {
		return ""
	}
	return idx.resolved(i).parent
}

// resolved returns the cached path of item i, computing it on first use.
// Concurrent first calls compute the same value and either store wins.
func (idx *Index) resolved(i int) *resolvedPath {
	if p := idx.paths[i].Load(); p != nil {
		return p
	}
	it := idx.items[i]
	parent := idx.strings.Text(it.Path)
	if pos, ok := it.Owner.Position(); ok {
		parent += PathSeparator + idx.strings.Text(idx.parents[pos].Name)
	}
	name := idx.strings.Text(it.Name)
	p := &resolvedPath{
		full:         parent + PathSeparator + name,
		parent:       parent,
		foldedParent: strings.ToLower(parent),
		foldedName:   strings.ToLower(name),
	}
	p.folded = p.foldedParent + PathSeparator + p.foldedName
	idx.paths[i].Store(p)
	return p
}
