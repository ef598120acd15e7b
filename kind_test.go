package docidx_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/docidx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromCode(t *testing.T) {
	t.Parallel()

	t.Run("accepts every stable code", func(t *testing.T) {
		t.Parallel()
		codes := map[int]docidx.ItemKind{
			0:  docidx.KindModule,
			3:  docidx.KindRecordType,
			5:  docidx.KindFunction,
			6:  docidx.KindTypeAlias,
			8:  docidx.KindInterfaceType,
			10: docidx.KindRequiredMethod,
			11: docidx.KindMethod,
			16: docidx.KindAssociatedTypeSlot,
			17: docidx.KindConstant,
		}
		for code, want := range codes {
			got, err := docidx.KindFromCode(code)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("rejects unknown codes as out of range", func(t *testing.T) {
		t.Parallel()
		for _, code := range []int{-1, 1, 2, 4, 99} {
			_, err := docidx.KindFromCode(code)
			assert.Equal(t, docidx.EOUTOFRANGE, docidx.ErrorCode(err), "code %d", code)
		}
	})
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want docidx.ItemKind
	}{
		{"fn", docidx.KindFunction},
		{"Function", docidx.KindFunction},
		{"struct", docidx.KindRecordType},
		{"interface", docidx.KindInterfaceType},
		{" trait ", docidx.KindInterfaceType},
		{"module", docidx.KindModule},
		{"const", docidx.KindConstant},
		{"tymethod", docidx.KindRequiredMethod},
		{"associatedtype", docidx.KindAssociatedTypeSlot},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := docidx.ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects unknown names", func(t *testing.T) {
		t.Parallel()
		_, err := docidx.ParseKind("macro")
		assert.Equal(t, docidx.EINVALID, docidx.ErrorCode(err))
	})
}

func TestItemKind_Text(t *testing.T) {
	t.Parallel()

	t.Run("marshals as name", func(t *testing.T) {
		t.Parallel()
		data, err := json.Marshal([]docidx.ItemKind{docidx.KindFunction, docidx.KindMethod})
		require.NoError(t, err)
		assert.JSONEq(t, `["fn","method"]`, string(data))
	})

	t.Run("unmarshals aliases", func(t *testing.T) {
		t.Parallel()
		var kinds []docidx.ItemKind
		require.NoError(t, json.Unmarshal([]byte(`["function","record","mod"]`), &kinds))
		assert.Equal(t, []docidx.ItemKind{docidx.KindFunction, docidx.KindRecordType, docidx.KindModule}, kinds)
	})

	t.Run("refuses to marshal unknown kind", func(t *testing.T) {
		t.Parallel()
		_, err := docidx.ItemKind(42).MarshalText()
		assert.Equal(t, docidx.EOUTOFRANGE, docidx.ErrorCode(err))
		assert.Equal(t, "unknown", docidx.ItemKind(42).String())
	})
}

func TestItemKind_IsMember(t *testing.T) {
	t.Parallel()

	assert.True(t, docidx.KindMethod.IsMember())
	assert.True(t, docidx.KindRequiredMethod.IsMember())
	assert.True(t, docidx.KindAssociatedTypeSlot.IsMember())
	assert.False(t, docidx.KindFunction.IsMember())
	assert.False(t, docidx.KindModule.IsMember())
}

func TestKindPolicy_Rank(t *testing.T) {
	t.Parallel()

	t.Run("default orders types before members before constants before modules", func(t *testing.T) {
		t.Parallel()
		p := docidx.DefaultKindPolicy()
		assert.Equal(t, p.Rank(docidx.KindFunction), p.Rank(docidx.KindRecordType))
		assert.Equal(t, p.Rank(docidx.KindFunction), p.Rank(docidx.KindInterfaceType))
		assert.Less(t, p.Rank(docidx.KindRecordType), p.Rank(docidx.KindMethod))
		assert.Less(t, p.Rank(docidx.KindMethod), p.Rank(docidx.KindConstant))
		assert.Less(t, p.Rank(docidx.KindConstant), p.Rank(docidx.KindModule))
	})

	t.Run("nil policy uses default", func(t *testing.T) {
		t.Parallel()
		var p docidx.KindPolicy
		def := docidx.DefaultKindPolicy()
		for _, k := range docidx.Kinds {
			assert.Equal(t, def.Rank(k), p.Rank(k))
		}
	})

	t.Run("kinds missing from policy rank last", func(t *testing.T) {
		t.Parallel()
		p := docidx.KindPolicy{docidx.KindModule: 0}
		assert.Less(t, p.Rank(docidx.KindModule), p.Rank(docidx.KindFunction))
	})
}
