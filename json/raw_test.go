package json_test

import (
	"testing"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRaw(t *testing.T) {
	t.Parallel()

	t.Run("parses a single library", func(t *testing.T) {
		t.Parallel()
		libs, err := json.ParseRaw([]byte(`{
		  "name": "graphtest",
		  "doc": "Graph utilities.",
		  "parents": [{"kind": "struct", "name": "Graph"}],
		  "items": [
		    {"kind": "struct", "name": "Graph", "path": "graphtest"},
		    {"kind": "method", "name": "add_node", "owner": 0,
		     "signature": {"params": ["Graph", "Node"], "returns": "NodeId"}}
		  ]
		}`))
		require.NoError(t, err)
		require.Len(t, libs, 1)

		lib := libs[0]
		assert.Equal(t, "graphtest", lib.Name)
		require.Len(t, lib.Items, 2)
		assert.Equal(t, docidx.KindMethod, lib.Items[1].Kind)
		require.NotNil(t, lib.Items[1].Owner)
		assert.Equal(t, 0, *lib.Items[1].Owner)
		assert.Nil(t, lib.Items[0].Owner)
		assert.Equal(t, []string{"Graph", "Node"}, lib.Items[1].Signature.Params)
	})

	t.Run("parses an array of libraries", func(t *testing.T) {
		t.Parallel()
		libs, err := json.ParseRaw([]byte(`  [
		  {"name": "a", "items": [{"kind": "fn", "name": "f", "path": "a"}]},
		  {"name": "b", "items": [{"kind": "const", "name": "C", "path": "b"}]}
		]`))
		require.NoError(t, err)
		require.Len(t, libs, 2)
		assert.Equal(t, docidx.KindConstant, libs[1].Items[0].Kind)
	})

	t.Run("rejects unknown kind names", func(t *testing.T) {
		t.Parallel()
		_, err := json.ParseRaw([]byte(`{"name": "a", "items": [{"kind": "macro", "name": "m", "path": "a"}]}`))
		assert.Equal(t, docidx.EMALFORMED, docidx.ErrorCode(err))
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		t.Parallel()
		_, err := json.ParseRaw([]byte(`[{`))
		assert.Equal(t, docidx.EMALFORMED, docidx.ErrorCode(err))
	})
}

func TestDecodeRaw(t *testing.T) {
	t.Parallel()

	t.Run("builds indexes", func(t *testing.T) {
		t.Parallel()
		indexes, err := json.DecodeRaw([]byte(`{
		  "name": "graphtest",
		  "parents": [{"kind": "struct", "name": "Graph"}],
		  "items": [
		    {"kind": "struct", "name": "Graph", "path": "graphtest"},
		    {"kind": "method", "name": "add_node", "owner": 0}
		  ]
		}`))
		require.NoError(t, err)
		require.Len(t, indexes, 1)
		assert.Equal(t, "graphtest::Graph::add_node", indexes[0].Path(1))
	})

	t.Run("rejects owner outside the parent table", func(t *testing.T) {
		t.Parallel()
		indexes, err := json.DecodeRaw([]byte(`{
		  "name": "lib",
		  "parents": [{"kind": "struct", "name": "A"}, {"kind": "trait", "name": "B"}],
		  "items": [{"kind": "method", "name": "m", "path": "lib", "owner": 99}]
		}`))
		assert.Nil(t, indexes)
		assert.Equal(t, docidx.EOUTOFRANGE, docidx.ErrorCode(err))
	})
}
