package json

import (
	"encoding/json"

	"github.com/fwojciec/docidx"
)

// Encode serializes indexes into one bundle. Text used more than once across
// the bundle goes into the shared string table; other text is written inline.
// A path equal to the preceding item's path is written as "".
// Returns EINVALID if two indexes share a library name.
func Encode(indexes ...*docidx.Index) ([]byte, error) {
	e := &encoder{counts: make(map[string]int)}
	records := make(map[string]*libraryRecord, len(indexes))
	for _, idx := range indexes {
		if idx == nil {
			return nil, docidx.Errorf(docidx.EINVALID, "nil index")
		}
		if _, ok := records[idx.Name()]; ok {
			return nil, docidx.Errorf(docidx.EINVALID, "duplicate library %q", idx.Name())
		}
		records[idx.Name()] = e.collect(idx)
	}

	e.assign()

	out := struct {
		Strings   []string       `json:"strings"`
		Libraries map[string]any `json:"libraries"`
	}{
		Strings:   e.table,
		Libraries: make(map[string]any, len(records)),
	}
	if out.Strings == nil {
		out.Strings = []string{}
	}
	for name, rec := range records {
		out.Libraries[name] = e.library(rec)
	}
	return json.Marshal(out)
}

// libraryRecord is an index flattened to text with paths compressed.
type libraryRecord struct {
	doc     string
	items   []itemRecord
	parents []parentRecord
}

type itemRecord struct {
	kind      docidx.ItemKind
	name      string
	path      string
	summary   string
	owner     docidx.OwnerRef
	signature *signatureRecord
}

type parentRecord struct {
	kind docidx.ItemKind
	name string
}

type signatureRecord struct {
	params []string
	ret    string
}

type encoder struct {
	counts  map[string]int
	order   []string
	table   []string
	handles map[string]int
}

func (e *encoder) count(s string) string {
	if s == "" {
		return s
	}
	if _, ok := e.counts[s]; !ok {
		e.order = append(e.order, s)
	}
	e.counts[s]++
	return s
}

func (e *encoder) collect(idx *docidx.Index) *libraryRecord {
	rec := &libraryRecord{doc: e.count(idx.Doc())}
	for i := range idx.ParentLen() {
		p, _ := idx.Parent(i)
		rec.parents = append(rec.parents, parentRecord{kind: p.Kind, name: e.count(idx.Text(p.Name))})
	}

	prevPath := ""
	for _, it := range idx.Items() {
		path := idx.Text(it.Path)
		r := itemRecord{
			kind:    it.Kind,
			name:    e.count(idx.Text(it.Name)),
			summary: e.count(idx.Text(it.Summary)),
			owner:   it.Owner,
		}
		if path != prevPath {
			r.path = e.count(path)
			prevPath = path
		}
		if sig := it.Signature; sig != nil {
			sr := &signatureRecord{ret: e.count(idx.Text(sig.Return))}
			for _, p := range sig.Params {
				sr.params = append(sr.params, e.count(idx.Text(p)))
			}
			r.signature = sr
		}
		rec.items = append(rec.items, r)
	}
	return rec
}

// assign gives table positions to repeated text in first-seen order.
func (e *encoder) assign() {
	e.handles = make(map[string]int)
	for _, s := range e.order {
		if e.counts[s] > 1 {
			e.handles[s] = len(e.table)
			e.table = append(e.table, s)
		}
	}
}

func (e *encoder) ref(s string) any {
	if h, ok := e.handles[s]; ok {
		return h
	}
	return s
}

func (e *encoder) library(rec *libraryRecord) any {
	items := make([]any, len(rec.items))
	for i, it := range rec.items {
		var owner any
		if pos, ok := it.owner.Position(); ok {
			owner = pos
		}
		var sig any
		if it.signature != nil {
			params := make([]any, len(it.signature.params))
			for j, p := range it.signature.params {
				params[j] = e.ref(p)
			}
			var ret any
			if it.signature.ret != "" {
				ret = e.ref(it.signature.ret)
			}
			sig = []any{params, ret}
		}
		items[i] = []any{int(it.kind), e.ref(it.name), e.ref(it.path), e.ref(it.summary), owner, sig}
	}

	parents := make([]any, len(rec.parents))
	for i, p := range rec.parents {
		parents[i] = []any{int(p.kind), e.ref(p.name)}
	}

	return map[string]any{
		"doc":     e.ref(rec.doc),
		"items":   items,
		"parents": parents,
	}
}
