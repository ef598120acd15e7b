// Package json encodes and decodes serialized documentation indexes.
//
// A bundle holds a shared string table and one record per library:
//
//	{
//	  "strings": ["graphtest", ...],
//	  "libraries": {
//	    "graphtest": {"doc": ..., "items": [...], "parents": [...]}
//	  }
//	}
//
// A string reference is an inline JSON string, an integer position in
// "strings", or null. Items are [kind, name, path, summary, owner, signature]
// and parents are [kind, name]. An empty path repeats the preceding item's
// path.
package json

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/fwojciec/docidx"
)

// Ensure Decode implements docidx.Decoder at compile time.
var _ docidx.Decoder = docidx.DecoderFunc(Decode)

type bundle struct {
	Strings   []string           `json:"strings"`
	Libraries map[string]library `json:"libraries"`
}

type library struct {
	Doc     json.RawMessage   `json:"doc"`
	Items   []json.RawMessage `json:"items"`
	Parents []json.RawMessage `json:"parents"`
}

// Decode loads every library of a serialized bundle. All libraries share one
// string table. Returns EMALFORMED or EOUTOFRANGE for invalid input; no index
// is returned on error.
func Decode(data []byte) ([]*docidx.Index, error) {
	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, docidx.Errorf(docidx.EMALFORMED, "invalid index bundle: %s", err)
	}
	if b.Libraries == nil {
		return nil, docidx.Errorf(docidx.EMALFORMED, "index bundle has no libraries")
	}

	d := &decoder{strs: docidx.NewStringTable()}
	d.handles = make([]docidx.StringRef, len(b.Strings))
	for i, s := range b.Strings {
		d.handles[i] = d.strs.Intern(s)
	}

	names := make([]string, 0, len(b.Libraries))
	for name := range b.Libraries {
		names = append(names, name)
	}
	slices.Sort(names)

	indexes := make([]*docidx.Index, 0, len(names))
	for _, name := range names {
		idx, err := d.library(name, b.Libraries[name])
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

// decoder resolves string references against a bundle's table.
type decoder struct {
	strs    *docidx.StringTable
	handles []docidx.StringRef
}

func (d *decoder) library(name string, lib library) (*docidx.Index, error) {
	if lib.Items == nil {
		return nil, docidx.Errorf(docidx.EMALFORMED, "library %q: items required", name)
	}
	doc, err := d.ref(lib.Doc, false)
	if err != nil {
		return nil, wrap(err, "library %q: doc", name)
	}

	parents := make([]docidx.ParentEntry, len(lib.Parents))
	for i, raw := range lib.Parents {
		p, err := d.parent(raw)
		if err != nil {
			return nil, wrap(err, "library %q: parent %d", name, i)
		}
		parents[i] = p
	}

	items := make([]docidx.Item, len(lib.Items))
	for i, raw := range lib.Items {
		it, err := d.item(raw)
		if err != nil {
			return nil, wrap(err, "library %q: item %d", name, i)
		}
		items[i] = it
	}

	return docidx.NewIndex(name, doc, items, parents, d.strs)
}

func (d *decoder) parent(raw json.RawMessage) (docidx.ParentEntry, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) != 2 {
		return docidx.ParentEntry{}, docidx.Errorf(docidx.EMALFORMED, "parent must be a [kind, name] array")
	}
	kind, err := d.kind(fields[0])
	if err != nil {
		return docidx.ParentEntry{}, err
	}
	name, err := d.ref(fields[1], true)
	if err != nil {
		return docidx.ParentEntry{}, err
	}
	return docidx.ParentEntry{Kind: kind, Name: name}, nil
}

func (d *decoder) item(raw json.RawMessage) (docidx.Item, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return docidx.Item{}, docidx.Errorf(docidx.EMALFORMED, "item must be an array")
	}
	if len(fields) < 4 || len(fields) > 6 {
		return docidx.Item{}, docidx.Errorf(docidx.EMALFORMED, "item has %d fields, want 4 to 6", len(fields))
	}
	for len(fields) < 6 {
		fields = append(fields, json.RawMessage("null"))
	}

	var it docidx.Item
	var err error
	if it.Kind, err = d.kind(fields[0]); err != nil {
		return it, err
	}
	if it.Name, err = d.ref(fields[1], true); err != nil {
		return it, wrap(err, "name")
	}
	if it.Path, err = d.ref(fields[2], false); err != nil {
		return it, wrap(err, "path")
	}
	if it.Summary, err = d.ref(fields[3], false); err != nil {
		return it, wrap(err, "summary")
	}
	if it.Owner, err = d.owner(fields[4]); err != nil {
		return it, err
	}
	if it.Signature, err = d.signature(fields[5]); err != nil {
		return it, wrap(err, "signature")
	}
	return it, nil
}

func (d *decoder) kind(raw json.RawMessage) (docidx.ItemKind, error) {
	var code int
	if err := json.Unmarshal(raw, &code); err != nil {
		return 0, docidx.Errorf(docidx.EMALFORMED, "kind must be an integer")
	}
	return docidx.KindFromCode(code)
}

func (d *decoder) owner(raw json.RawMessage) (docidx.OwnerRef, error) {
	if isNull(raw) {
		return docidx.NoOwner, nil
	}
	var owner int
	if err := json.Unmarshal(raw, &owner); err != nil {
		return 0, docidx.Errorf(docidx.EMALFORMED, "owner must be an integer or null")
	}
	if owner < 0 {
		return 0, docidx.Errorf(docidx.EOUTOFRANGE, "owner %d is negative", owner)
	}
	return docidx.OwnerAt(owner), nil
}

func (d *decoder) signature(raw json.RawMessage) (*docidx.Signature, error) {
	if isNull(raw) {
		return nil, nil
	}
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 || len(fields) > 2 {
		return nil, docidx.Errorf(docidx.EMALFORMED, "signature must be a [params, return] array")
	}
	var params []json.RawMessage
	if err := json.Unmarshal(fields[0], &params); err != nil {
		return nil, docidx.Errorf(docidx.EMALFORMED, "signature params must be an array")
	}
	sig := &docidx.Signature{Params: make([]docidx.StringRef, len(params))}
	for i, p := range params {
		ref, err := d.ref(p, false)
		if err != nil {
			return nil, err
		}
		sig.Params[i] = ref
	}
	if len(fields) == 2 {
		ref, err := d.ref(fields[1], false)
		if err != nil {
			return nil, err
		}
		sig.Return = ref
	}
	return sig, nil
}

// ref decodes a string reference. Null resolves to the empty string unless
// the field is required.
func (d *decoder) ref(raw json.RawMessage, required bool) (docidx.StringRef, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || isNull(raw):
		if required {
			return 0, docidx.Errorf(docidx.EMALFORMED, "string reference required")
		}
		return docidx.EmptyString, nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, docidx.Errorf(docidx.EMALFORMED, "invalid string literal")
		}
		if required && s == "" {
			return 0, docidx.Errorf(docidx.EMALFORMED, "string reference required")
		}
		return d.strs.Intern(s), nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, docidx.Errorf(docidx.EMALFORMED, "string reference must be a string, an integer or null")
	}
	if n < 0 || n >= len(d.handles) {
		return 0, docidx.Errorf(docidx.EOUTOFRANGE, "string reference %d outside table of %d entries", n, len(d.handles))
	}
	ref := d.handles[n]
	if required && ref == docidx.EmptyString {
		return 0, docidx.Errorf(docidx.EMALFORMED, "string reference required")
	}
	return ref, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// wrap prefixes an application error's message, keeping its code.
func wrap(err error, format string, args ...any) error {
	return docidx.Errorf(docidx.ErrorCode(err), format+": %s", append(args, docidx.ErrorMessage(err))...)
}
