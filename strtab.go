package docidx

// StringRef is a handle into a StringTable. Equal handles from one table
// always resolve to identical text.
type StringRef uint32

// EmptyString is the handle of the empty string in every table.
const EmptyString StringRef = 0

// StringReader is the read-only view of a StringTable.
type StringReader interface {
	Resolve(ref StringRef) (string, error)
	Text(ref StringRef) string
	Contains(ref StringRef) bool
	Len() int
}

var _ StringReader = (*StringTable)(nil)

// StringTable deduplicates text behind small integer handles.
//
// A table is written by a single build or load step and is read-only once the
// indexes referencing it are published.
type StringTable struct {
	texts   []string
	handles map[string]StringRef
}

// NewStringTable returns a table holding only the empty string.
func NewStringTable() *StringTable {
	return &StringTable{
		texts:   []string{""},
		handles: map[string]StringRef{"": EmptyString},
	}
}

// Intern returns the handle for text, adding it on first use.
func (t *StringTable) Intern(text string) StringRef {
	if ref, ok := t.handles[text]; ok {
		return ref
	}
	ref := StringRef(len(t.texts))
	t.texts = append(t.texts, text)
	t.handles[text] = ref
	return ref
}

// Resolve returns the text behind ref.
// Returns EOUTOFRANGE if ref was not issued by this table.
func (t *StringTable) Resolve(ref StringRef) (string, error) {
	if !t.Contains(ref) {
		return "", Errorf(EOUTOFRANGE, "string handle %d outside table of %d entries", ref, len(t.texts))
	}
	return t.texts[ref], nil
}

// Text resolves a handle already known to be valid. Invalid handles yield "".
func (t *StringTable) Text(ref StringRef) string {
	if !t.Contains(ref) {
		return ""
	}
	return t.texts[ref]
}

// Contains reports whether ref lies within the table.
func (t *StringTable) Contains(ref StringRef) bool {
	return int(ref) < len(t.texts)
}

// Len returns the number of distinct strings, including the empty string.
func (t *StringTable) Len() int {
	return len(t.texts)
}
