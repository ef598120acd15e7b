package json

import (
	"bytes"
	"encoding/json"

	"github.com/fwojciec/docidx"
)

// Ensure DecodeRaw implements docidx.Decoder at compile time.
var _ docidx.Decoder = docidx.DecoderFunc(DecodeRaw)

// ParseRaw parses raw item metadata: a single library object or an array of
// them. Kinds are written by name ("fn", "struct", ...).
func ParseRaw(data []byte) ([]*docidx.RawLibrary, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var libs []*docidx.RawLibrary
		if err := json.Unmarshal(data, &libs); err != nil {
			return nil, docidx.Errorf(docidx.EMALFORMED, "invalid raw libraries: %s", err)
		}
		return libs, nil
	}
	var lib docidx.RawLibrary
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, docidx.Errorf(docidx.EMALFORMED, "invalid raw library: %s", err)
	}
	return []*docidx.RawLibrary{&lib}, nil
}

// DecodeRaw parses raw item metadata and builds its indexes with one shared
// string table.
func DecodeRaw(data []byte) ([]*docidx.Index, error) {
	libs, err := ParseRaw(data)
	if err != nil {
		return nil, err
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
