package docidx

import (
	"context"
	"slices"
	"sync"
)

// Ensure Registry implements Searcher at compile time.
var _ Searcher = (*Registry)(nil)

// Registry holds the loaded indexes a process searches, keyed by library
// name. Callers load an index, register it, and pass the registry to the
// components that query it.
type Registry struct {
	// Policy ranks kinds when match classes tie. Nil uses DefaultKindPolicy.
	Policy KindPolicy

	// Optional accelerator factories, invoked once per registered index.
	TermFilterFunc func(*Index) TermFilter
	KindIndexFunc  func(*Index) KindIndex

	mu   sync.RWMutex
	libs map[string]*registered
}

type registered struct {
	index *Index
	terms TermFilter
	kinds KindIndex
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{libs: make(map[string]*registered)}
}

// Register makes idx searchable under its library name.
// Returns ECONFLICT if a library with that name is already registered.
func (r *Registry) Register(idx *Index) error {
	if idx == nil {
		return Errorf(EINVALID, "index required")
	}
	entry := &registered{index: idx}
	if r.TermFilterFunc != nil {
		entry.terms = r.TermFilterFunc(idx)
	}
	if r.KindIndexFunc != nil {
		entry.kinds = r.KindIndexFunc(idx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.libs == nil {
		r.libs = make(map[string]*registered)
	}
	if _, ok := r.libs[idx.Name()]; ok {
		return Errorf(ECONFLICT, "library %q already registered", idx.Name())
	}
	r.libs[idx.Name()] = entry
	return nil
}

// Lookup returns the index registered under name.
// Returns ENOTREADY if no such library has been loaded.
func (r *Registry) Lookup(name string) (*Index, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.libs[name]
	if !ok {
		return nil, Errorf(ENOTREADY, "library %q not loaded", name)
	}
	return entry.index, nil
}

// Names returns the registered library names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.libs))
	for name := range r.libs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Search runs q against one library, or against every registered library
// when q.Library is empty. Results from several libraries are merged by match
// class, kind rank, library name and catalog position.
// Returns ENOTREADY if the library, or any library at all, is not loaded.
func (r *Registry) Search(ctx context.Context, q Query) ([]DisplayableMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := r.entries(q.Library)
	if err != nil {
		return nil, err
	}
	if q.Limit <= 0 {
		return nil, nil
	}

	parsed := parseQuery(q.Text)
	var cands []candidate
	for _, e := range entries {
		cands = append(cands, e.index.candidates(parsed, SearchOptions{
			Limit:  q.Limit,
			Policy: r.Policy,
			Terms:  e.terms,
			Kinds:  e.kinds,
		})...)
	}
	sortCandidates(cands)
	return display(cands, q.Limit)
}

func (r *Registry) entries(library string) ([]*registered, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if library != "" {
		entry, ok := r.libs[library]
		if !ok {
			return nil, Errorf(ENOTREADY, "library %q not loaded", library)
		}
		return []*registered{entry}, nil
	}
	if len(r.libs) == 0 {
		return nil, Errorf(ENOTREADY, "no library loaded")
	}
	entries := make([]*registered, 0, len(r.libs))
	for _, e := range r.libs {
		entries = append(entries, e)
	}
	return entries, nil
}
