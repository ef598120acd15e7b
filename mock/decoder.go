package mock

import "github.com/fwojciec/docidx"

var _ docidx.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of docidx.Decoder.
type Decoder struct {
	DecodeFn func(data []byte) ([]*docidx.Index, error)
}

func (d *Decoder) Decode(data []byte) ([]*docidx.Index, error) {
	return d.DecodeFn(data)
}
