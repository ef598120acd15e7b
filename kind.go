package docidx

import "strings"

// ItemKind identifies what a documentation item is. The integer value is the
// kind code written to serialized indexes and must never change.
type ItemKind int

// ItemKind constants.
const (
	KindModule             ItemKind = 0
	KindRecordType         ItemKind = 3
	KindFunction           ItemKind = 5
	KindTypeAlias          ItemKind = 6
	KindInterfaceType      ItemKind = 8
	KindRequiredMethod     ItemKind = 10
	KindMethod             ItemKind = 11
	KindAssociatedTypeSlot ItemKind = 16
	KindConstant           ItemKind = 17
)

// Kinds lists every ItemKind in code order.
var Kinds = []ItemKind{
	KindModule,
	KindRecordType,
	KindFunction,
	KindTypeAlias,
	KindInterfaceType,
	KindRequiredMethod,
	KindMethod,
	KindAssociatedTypeSlot,
	KindConstant,
}

var kindNames = map[ItemKind]string{
	KindModule:             "mod",
	KindRecordType:         "struct",
	KindFunction:           "fn",
	KindTypeAlias:          "type",
	KindInterfaceType:      "trait",
	KindRequiredMethod:     "tymethod",
	KindMethod:             "method",
	KindAssociatedTypeSlot: "associatedtype",
	KindConstant:           "constant",
}

// kindAliases maps every accepted spelling to its kind.
var kindAliases = map[string]ItemKind{
	"mod":            KindModule,
	"module":         KindModule,
	"struct":         KindRecordType,
	"record":         KindRecordType,
	"fn":             KindFunction,
	"function":       KindFunction,
	"type":           KindTypeAlias,
	"trait":          KindInterfaceType,
	"interface":      KindInterfaceType,
	"tymethod":       KindRequiredMethod,
	"method":         KindMethod,
	"associatedtype": KindAssociatedTypeSlot,
	"const":          KindConstant,
	"constant":       KindConstant,
}

// Valid reports whether k is a known kind code.
func (k ItemKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// String returns the short name of the kind.
func (k ItemKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k ItemKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, Errorf(EOUTOFRANGE, "unknown item kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ItemKind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseKind returns the kind named by s. Matching is case-insensitive and
// accepts aliases such as "function" or "interface".
func ParseKind(s string) (ItemKind, error) {
	if kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return kind, nil
	}
	return 0, Errorf(EINVALID, "unknown item kind %q", s)
}

// KindFromCode validates a serialized kind code.
func KindFromCode(code int) (ItemKind, error) {
	k := ItemKind(code)
	if !k.Valid() {
		return 0, Errorf(EOUTOFRANGE, "kind code %d is not a known item kind", code)
	}
	return k, nil
}

// IsMember reports whether items of this kind are normally owned by a parent type.
func (k ItemKind) IsMember() bool {
	switch k {
	case KindMethod, KindRequiredMethod, KindAssociatedTypeSlot:
		return true
	}
	return false
}

// KindPolicy ranks kinds when match classes are equal. Lower ranks sort first.
type KindPolicy map[ItemKind]int

// unrankedKind is the rank of any kind missing from a policy.
const unrankedKind = 100

// DefaultKindPolicy returns the default ranking: types and functions, then
// members, then constants, then modules.
func DefaultKindPolicy() KindPolicy {
	return KindPolicy{
		KindFunction:           0,
		KindRecordType:         0,
		KindInterfaceType:      0,
		KindTypeAlias:          0,
		KindMethod:             1,
		KindRequiredMethod:     1,
		KindAssociatedTypeSlot: 1,
		KindConstant:           2,
		KindModule:             3,
	}
}

// Rank returns the rank of k. A nil policy uses DefaultKindPolicy.
func (p KindPolicy) Rank(k ItemKind) int {
	if p == nil {
		p = defaultPolicy
	}
	if r, ok := p[k]; ok {
		return r
	}
	return unrankedKind
}

var defaultPolicy = DefaultKindPolicy()
