package docidx

// RawLibrary is the raw item metadata of one library as produced by the
// extraction pipeline.
type RawLibrary struct {
	Name    string      `json:"name"`
	Doc     string      `json:"doc,omitempty"`
	Parents []RawParent `json:"parents,omitempty"`
	Items   []RawItem   `json:"items"`
}

// RawParent is an uninterned parent entry.
type RawParent struct {
	Kind ItemKind `json:"kind"`
	Name string   `json:"name"`
}

// RawItem is an uninterned item record. An empty Path inherits the path of
// the preceding item.
type RawItem struct {
	Kind      ItemKind      `json:"kind"`
	Name      string        `json:"name"`
	Path      string        `json:"path,omitempty"`
	Summary   string        `json:"summary,omitempty"`
	Owner     *int          `json:"owner,omitempty"`
	Signature *RawSignature `json:"signature,omitempty"`
}

// RawSignature is an uninterned signature.
type RawSignature struct {
	Params  []string `json:"params,omitempty"`
	Returns string   `json:"returns,omitempty"`
}

// Builder turns raw libraries into indexes that share one string table.
//
// A Builder is a single-writer value: indexes it returns must not be searched
// while further libraries are built into the same table.
type Builder struct {
	Strings *StringTable
}

// NewBuilder returns a Builder with a fresh string table.
func NewBuilder() *Builder {
	return &Builder{Strings: NewStringTable()}
}

// Build interns lib's text and returns its index.
// Returns EINVALID if the library has no name, and the errors of NewIndex
// for records that break index invariants.
func (b *Builder) Build(lib *RawLibrary) (*Index, error) {
	if lib == nil || lib.Name == "" {
		return nil, Errorf(EINVALID, "library name required")
	}
	if b.Strings == nil {
		b.Strings = NewStringTable()
	}

	parents := make([]ParentEntry, len(lib.Parents))
	for i, p := range lib.Parents {
		parents[i] = ParentEntry{Kind: p.Kind, Name: b.Strings.Intern(p.Name)}
	}

	items := make([]Item, len(lib.Items))
	for i, raw := range lib.Items {
		it := Item{
			Kind:    raw.Kind,
			Name:    b.Strings.Intern(raw.Name),
			Path:    b.Strings.Intern(raw.Path),
			Summary: b.Strings.Intern(raw.Summary),
		}
		if raw.Owner != nil {
			it.Owner = OwnerAt(*raw.Owner)
		}
		if raw.Signature != nil {
			sig := &Signature{
				Params: make([]StringRef, len(raw.Signature.Params)),
				Return: b.Strings.Intern(raw.Signature.Returns),
			}
			for j, p := range raw.Signature.Params {
				sig.Params[j] = b.Strings.Intern(p)
			}
			it.Signature = sig
		}
		items[i] = it
	}

	return NewIndex(lib.Name, b.Strings.Intern(lib.Doc), items, parents, b.Strings)
}
