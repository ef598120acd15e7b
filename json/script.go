package json

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/docidx"
)

// Ensure DecodeScript implements docidx.Decoder at compile time.
var _ docidx.Decoder = docidx.DecoderFunc(DecodeScript)

var (
	sharedStringsRe = regexp.MustCompile(`^var\s+R\s*=\s*`)
	libraryAssignRe = regexp.MustCompile(`^searchIndex\s*\[\s*("(?:[^"\\]|\\.)*")\s*\]\s*=\s*`)
)

// scriptKinds maps the kind codes of generated search-index.js files onto
// ItemKind. Codes without a counterpart are folded onto the closest kind.
var scriptKinds = map[int]docidx.ItemKind{
	0:  docidx.KindModule,
	3:  docidx.KindRecordType,
	4:  docidx.KindRecordType, // enum
	5:  docidx.KindFunction,
	6:  docidx.KindTypeAlias,
	7:  docidx.KindConstant, // static
	8:  docidx.KindInterfaceType,
	10: docidx.KindRequiredMethod,
	11: docidx.KindMethod,
	12: docidx.KindConstant, // struct field
	13: docidx.KindConstant, // enum variant
	14: docidx.KindFunction, // macro
	15: docidx.KindRecordType,
	16: docidx.KindAssociatedTypeSlot,
	17: docidx.KindConstant,
	18: docidx.KindConstant, // associated constant
	19: docidx.KindRecordType,
}

// scriptLibrary is a library record of a search-index.js file.
type scriptLibrary struct {
	Doc     string  `json:"doc"`
	Items   [][]any `json:"i"`
	Parents [][]any `json:"p"`
}

// DecodeScript loads the libraries of a generated search-index.js file. The
// script declares a shared string array R, the sentinels N (null), E (""),
// T ("t") and U ("u"), and one searchIndex["name"]={...} assignment per
// library.
func DecodeScript(data []byte) ([]*docidx.Index, error) {
	stmts, err := splitStatements(string(data))
	if err != nil {
		return nil, err
	}

	var shared []string
	var libs []*docidx.RawLibrary
	for _, stmt := range stmts {
		if loc := sharedStringsRe.FindStringIndex(stmt); loc != nil {
			expr, err := rewriteExpr(stmt[loc[1]:], nil)
			if err != nil {
				return nil, err
			}
			if err := json.Unmarshal([]byte(expr), &shared); err != nil {
				return nil, docidx.Errorf(docidx.EMALFORMED, "invalid shared string array: %s", err)
			}
			continue
		}

		m := libraryAssignRe.FindStringSubmatchIndex(stmt)
		if m == nil {
			continue
		}
		var name string
		if err := json.Unmarshal([]byte(stmt[m[2]:m[3]]), &name); err != nil {
			return nil, docidx.Errorf(docidx.EMALFORMED, "invalid library name: %s", err)
		}
		expr, err := rewriteExpr(stmt[m[1]:], shared)
		if err != nil {
			return nil, wrap(err, "library %q", name)
		}
		var rec scriptLibrary
		if err := json.Unmarshal([]byte(expr), &rec); err != nil {
			return nil, docidx.Errorf(docidx.EMALFORMED, "library %q: %s", name, err)
		}
		lib, err := rec.raw(name)
		if err != nil {
			return nil, wrap(err, "library %q", name)
		}
		libs = append(libs, lib)
	}

	if len(libs) == 0 {
		return nil, docidx.Errorf(docidx.EMALFORMED, "script assigns no library")
	}

	b := docidx.NewBuilder()
	indexes := make([]*docidx.Index, 0, len(libs))
	for _, lib := range libs {
		idx, err := b.Build(lib)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

func (rec *scriptLibrary) raw(name string) (*docidx.RawLibrary, error) {
	lib := &docidx.RawLibrary{Name: name, Doc: rec.Doc}
	for i, p := range rec.Parents {
		if len(p) != 2 {
			return nil, docidx.Errorf(docidx.EMALFORMED, "parent %d must be a [kind, name] array", i)
		}
		kind, err := scriptKind(p[0])
		if err != nil {
			return nil, wrap(err, "parent %d", i)
		}
		pname, _ := p[1].(string)
		lib.Parents = append(lib.Parents, docidx.RawParent{Kind: kind, Name: pname})
	}

	for i, f := range rec.Items {
		if len(f) < 4 || len(f) > 6 {
			return nil, docidx.Errorf(docidx.EMALFORMED, "item %d has %d fields, want 4 to 6", i, len(f))
		}
		kind, err := scriptKind(f[0])
		if err != nil {
			return nil, wrap(err, "item %d", i)
		}
		it := docidx.RawItem{Kind: kind}
		var ok bool
		if it.Name, ok = f[1].(string); !ok {
			return nil, docidx.Errorf(docidx.EMALFORMED, "item %d: name must be a string", i)
		}
		it.Path, _ = f[2].(string)
		it.Summary, _ = f[3].(string)
		if len(f) > 4 && f[4] != nil {
			n, ok := f[4].(float64)
			if !ok || n != float64(int(n)) {
				return nil, docidx.Errorf(docidx.EMALFORMED, "item %d: parent must be an integer or null", i)
			}
			owner := int(n)
			it.Owner = &owner
		}
		if len(f) > 5 && f[5] != nil {
			it.Signature = scriptSignature(f[5])
		}
		lib.Items = append(lib.Items, it)
	}
	return lib, nil
}

func scriptKind(v any) (docidx.ItemKind, error) {
	n, ok := v.(float64)
	if !ok {
		return 0, docidx.Errorf(docidx.EMALFORMED, "kind must be an integer")
	}
	kind, ok := scriptKinds[int(n)]
	if !ok || n != float64(int(n)) {
		return 0, docidx.Errorf(docidx.EOUTOFRANGE, "kind code %v has no item kind", n)
	}
	return kind, nil
}

// scriptSignature converts a [inputs, output] type descriptor. Type nodes are
// [name] or [name, generics] and render as "name<generics>".
func scriptSignature(v any) *docidx.RawSignature {
	fields, ok := v.([]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	sig := &docidx.RawSignature{}
	if inputs, ok := fields[0].([]any); ok {
		for _, in := range inputs {
			sig.Params = append(sig.Params, renderType(in))
		}
	}
	if len(fields) > 1 {
		sig.Returns = renderOutput(fields[1])
	}
	return sig
}

func renderOutput(v any) string {
	list, ok := v.([]any)
	if !ok || isTypeNode(list) {
		return renderType(v)
	}
	parts := make([]string, len(list))
	for i, t := range list {
		parts[i] = renderType(t)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func renderType(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) == 0 {
			return ""
		}
		name, _ := t[0].(string)
		if len(t) < 2 {
			return name
		}
		if gens := renderGenerics(t[1]); gens != "" {
			return name + "<" + gens + ">"
		}
		return name
	}
	return ""
}

func renderGenerics(v any) string {
	list, ok := v.([]any)
	if !ok || isTypeNode(list) {
		return renderType(v)
	}
	parts := make([]string, 0, len(list))
	for _, t := range list {
		if s := renderType(t); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func isTypeNode(list []any) bool {
	if len(list) == 0 {
		return false
	}
	_, ok := list[0].(string)
	return ok
}

// splitStatements splits a script at top-level semicolons.
func splitStatements(src string) ([]string, error) {
	var stmts []string
	depth, start := 0, 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '"':
			end, err := skipString(src, i)
			if err != nil {
				return nil, err
			}
			i = end - 1
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
		case ';':
			if depth == 0 {
				if s := strings.TrimSpace(src[start:i]); s != "" {
					stmts = append(stmts, s)
				}
				start = i + 1
			}
		}
	}
	if s := strings.TrimSpace(src[start:]); s != "" {
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// skipString returns the position after the double-quoted string at src[i].
func skipString(src string, i int) (int, error) {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '"':
			return j + 1, nil
		}
	}
	return 0, docidx.Errorf(docidx.EMALFORMED, "unterminated string literal")
}

// rewriteExpr turns a script expression into JSON by expanding the sentinel
// identifiers and R[k] references to shared strings.
func rewriteExpr(src string, shared []string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"':
			end, err := skipString(src, i)
			if err != nil {
				return "", err
			}
			b.WriteString(src[i:end])
			i = end
		case c == '-' || isDigit(c):
			j := i + 1
			for j < len(src) && (isDigit(src[j]) || strings.IndexByte(".eE+-", src[j]) >= 0) {
				j++
			}
			b.WriteString(src[i:j])
			i = j
		case isIdentStart(c):
			j := i + 1
			for j < len(src) && (isIdentStart(src[j]) || isDigit(src[j])) {
				j++
			}
			switch ident := src[i:j]; ident {
			case "N", "null":
				b.WriteString("null")
			case "E":
				b.WriteString(`""`)
			case "T":
				b.WriteString(`"t"`)
			case "U":
				b.WriteString(`"u"`)
			case "true", "false":
				b.WriteString(ident)
			case "R":
				end, s, err := sharedRef(src, j, shared)
				if err != nil {
					return "", err
				}
				q, _ := json.Marshal(s)
				b.Write(q)
				j = end
			default:
				return "", docidx.Errorf(docidx.EMALFORMED, "unknown identifier %q", ident)
			}
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// sharedRef parses "[k]" at src[i] and returns the position after it and R[k].
func sharedRef(src string, i int, shared []string) (int, string, error) {
	if i >= len(src) || src[i] != '[' {
		return 0, "", docidx.Errorf(docidx.EMALFORMED, "expected R[index]")
	}
	end := strings.IndexByte(src[i:], ']')
	if end < 0 {
		return 0, "", docidx.Errorf(docidx.EMALFORMED, "unterminated R[index]")
	}
	n, err := strconv.Atoi(strings.TrimSpace(src[i+1 : i+end]))
	if err != nil {
		return 0, "", docidx.Errorf(docidx.EMALFORMED, "invalid shared string index %q", src[i+1:i+end])
	}
	if n < 0 || n >= len(shared) {
		return 0, "", docidx.Errorf(docidx.EOUTOFRANGE, "shared string R[%d] outside table of %d entries", n, len(shared))
	}
	return i + end + 1, shared[n], nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
