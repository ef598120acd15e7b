package docidx

import (
	"cmp"
	"context"
	"slices"
	"strings"
)

// MatchClass is the strength of a query match. Lower classes rank first.
type MatchClass int

// MatchClass constants.
const (
	Exact MatchClass = iota
	Prefix
	Substring
	NoMatch
)

var matchClassNames = [...]string{"exact", "prefix", "substring", "none"}

// String returns the name of the match class.
func (c MatchClass) String() string {
	if c < Exact || c > NoMatch {
		return "unknown"
	}
	return matchClassNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c MatchClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// DisplayableMatch is the renderer-facing view of a search result. It carries
// resolved text only, never string handles.
type DisplayableMatch struct {
	Library   string     `json:"library"`
	Path      string     `json:"path"`
	Name      string     `json:"name"`
	Kind      ItemKind   `json:"kind"`
	Summary   string     `json:"summary,omitempty"`
	Signature string     `json:"signature,omitempty"`
	Class     MatchClass `json:"class"`
}

// Query is a search request against a Searcher.
type Query struct {
	// Library restricts the search to one library. Empty searches all.
	Library string `json:"library,omitempty"`
	Text    string `json:"text"`
	Limit   int    `json:"limit"`
}

// Searcher answers queries against loaded indexes.
type Searcher interface {
	// Search returns at most q.Limit matches in rank order.
	// Returns ENOTREADY if the requested library has not been loaded.
	Search(ctx context.Context, q Query) ([]DisplayableMatch, error)
}

// TermFilter reports whether a query segment can occur in any resolved path
// of the index it was built for. False positives are allowed, false
// negatives are not.
type TermFilter interface {
	MayContain(segment string) bool
}

// KindIndex lists the catalog positions of the index it was built for by kind.
type KindIndex interface {
	// Positions returns the positions holding items of kind, ascending.
	Positions(kind ItemKind) []int
}

// SearchOptions tunes a search. Accelerators must have been built for the
// index being searched; they never change results.
type SearchOptions struct {
	Limit  int
	Policy KindPolicy
	Terms  TermFilter
	Kinds  KindIndex
}

// Search ranks the items of idx against text and returns at most limit
// matches using the default kind policy.
// Returns ENOTREADY if idx is nil.
func Search(idx *Index, text string, limit int) ([]DisplayableMatch, error) {
	if idx == nil {
		return nil, Errorf(ENOTREADY, "search before index load")
	}
	return idx.Search(text, SearchOptions{Limit: limit})
}

// Search ranks the catalog against text. The query is case-folded and
// trimmed; an empty query or a non-positive limit yields no matches.
//
// Matches are ordered by match class, then kind rank under opts.Policy, then
// catalog position.
func (idx *Index) Search(text string, opts SearchOptions) ([]DisplayableMatch, error) {
	if opts.Limit <= 0 {
		return nil, nil
	}
	cands := idx.candidates(parseQuery(text), opts)
	sortCandidates(cands)
	return display(cands, opts.Limit)
}

// candidate is a surviving item during ranking.
type candidate struct {
	idx   *Index
	pos   int
	class MatchClass
	rank  int
}

func sortCandidates(cands []candidate) {
	slices.SortFunc(cands, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(a.class, b.class),
			cmp.Compare(a.rank, b.rank),
			cmp.Compare(a.idx.name, b.idx.name),
			cmp.Compare(a.pos, b.pos),
		)
	})
}

func display(cands []candidate, limit int) ([]DisplayableMatch, error) {
	if len(cands) > limit {
		cands = cands[:limit]
	}
	matches := make([]DisplayableMatch, len(cands))
	for i, c := range cands {
		m, err := c.idx.Display(c.pos)
		if err != nil {
			return nil, err
		}
		m.Class = c.class
		matches[i] = m
	}
	return matches, nil
}

// candidates returns every item matching q in catalog order.
func (idx *Index) candidates(q query, opts SearchOptions) []candidate {
	if q.text == "" {
		return nil
	}
	if opts.Terms != nil {
		for _, seg := range strings.Split(q.text, PathSeparator) {
			if seg = strings.TrimSpace(seg); seg != "" && !opts.Terms.MayContain(seg) {
				return nil
			}
		}
	}

	var cands []candidate
	visit := func(i int) {
		it := idx.items[i]
		if q.kindSet && it.Kind != q.kind {
			return
		}
		if class := idx.classify(i, q); class != NoMatch {
			cands = append(cands, candidate{idx: idx, pos: i, class: class, rank: opts.Policy.Rank(it.Kind)})
		}
	}

	if q.kindSet && opts.Kinds != nil {
		for _, i := range opts.Kinds.Positions(q.kind) {
			if i >= 0 && i < len(idx.items) {
				visit(i)
			}
		}
		return cands
	}
	for i := range idx.items {
		visit(i)
	}
	return cands
}

// classify computes the match class of item i. The name is matched first;
// the full path can only contribute a substring match. A query ending in the
// path separator has no term and matches on the path alone.
func (idx *Index) classify(i int, q query) MatchClass {
	p := idx.resolved(i)
	class := NoMatch
	if q.term != "" {
		class = classifyName(p.foldedName, q.term)
	}
	if class != NoMatch && q.qualifier != "" && !strings.Contains(p.foldedParent, q.qualifier) {
		class = NoMatch
	}
	if class == NoMatch && strings.Contains(p.folded, q.text) {
		class = Substring
	}
	return class
}

func classifyName(name, term string) MatchClass {
	switch {
	case name == term:
		return Exact
	case strings.HasPrefix(name, term):
		return Prefix
	case strings.Contains(name, term):
		return Substring
	}
	return NoMatch
}

// query is a normalized search string.
type query struct {
	// text is the whole query after the kind filter was removed.
	text string
	// term is matched against item names.
	term string
	// qualifier must occur in the parent path of matching items.
	qualifier string

	kind    ItemKind
	kindSet bool
}

// parseQuery normalizes s. A leading "kind:" restricts results to that kind
// when the prefix names a kind; "a::b::term" splits into a qualifier and a
// term.
func parseQuery(s string) query {
	var q query
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(s, ':'); i > 0 && !strings.HasPrefix(s[i:], PathSeparator) {
		if kind, err := ParseKind(s[:i]); err == nil {
			q.kind, q.kindSet = kind, true
			s = strings.TrimSpace(s[i+1:])
		}
	}
	q.text = s
	q.term = s
	if i := strings.LastIndex(s, PathSeparator); i >= 0 {
		q.qualifier = strings.TrimSpace(s[:i])
		q.term = strings.TrimSpace(s[i+len(PathSeparator):])
	}
	return q
}
