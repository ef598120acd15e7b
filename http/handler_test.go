package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/docidx"
	dochttp "github.com/fwojciec/docidx/http"
	"github.com/fwojciec/docidx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns matches as JSON", func(t *testing.T) {
		t.Parallel()

		var got docidx.Query
		searcher := &mock.Searcher{
			SearchFn: func(_ context.Context, q docidx.Query) ([]docidx.DisplayableMatch, error) {
				got = q
				return []docidx.DisplayableMatch{{
					Library: "graphtest",
					Path:    "graphtest::Graph",
					Name:    "Graph",
					Kind:    docidx.KindRecordType,
					Class:   docidx.Exact,
				}}, nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/search?q=graph&lib=graphtest&n=5", nil)
		dochttp.NewHandler(searcher, discardLogger()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, docidx.Query{Library: "graphtest", Text: "graph", Limit: 5}, got)
		assert.JSONEq(t, `{
		  "query": "graph",
		  "results": [{
		    "library": "graphtest",
		    "path": "graphtest::Graph",
		    "name": "Graph",
		    "kind": "struct",
		    "class": "exact"
		  }]
		}`, rec.Body.String())
	})

	t.Run("uses the handler limit by default", func(t *testing.T) {
		t.Parallel()

		var got docidx.Query
		searcher := &mock.Searcher{
			SearchFn: func(_ context.Context, q docidx.Query) ([]docidx.DisplayableMatch, error) {
				got = q
				return nil, nil
			},
		}

		h := dochttp.NewHandler(searcher, discardLogger())
		h.Limit = 25
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=x", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 25, got.Limit)
		assert.JSONEq(t, `{"query": "x", "results": []}`, rec.Body.String())
	})

	t.Run("rejects invalid limits", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(context.Context, docidx.Query) ([]docidx.DisplayableMatch, error) {
				t.Fatal("searcher should not be called")
				return nil, nil
			},
		}
		h := dochttp.NewHandler(searcher, discardLogger())

		for _, n := range []string{"0", "-1", "abc", "201"} {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=x&n="+n, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, n)
		}
	})

	t.Run("maps error codes to statuses", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			err    error
			status int
		}{
			{docidx.Errorf(docidx.ENOTREADY, "library %q not loaded", "x"), http.StatusNotFound},
			{docidx.Errorf(docidx.EINVALID, "bad"), http.StatusBadRequest},
			{docidx.Errorf(docidx.EOUTOFRANGE, "bad ref"), http.StatusUnprocessableEntity},
			{context.Canceled, http.StatusInternalServerError},
			{docidx.Errorf("unmapped", "new code"), http.StatusInternalServerError},
		}
		for _, tt := range tests {
			searcher := &mock.Searcher{
				SearchFn: func(context.Context, docidx.Query) ([]docidx.DisplayableMatch, error) {
					return nil, tt.err
				},
			}
			rec := httptest.NewRecorder()
			dochttp.NewHandler(searcher, discardLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=x", nil))

			assert.Equal(t, tt.status, rec.Code, tt.err.Error())
			var body struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, docidx.ErrorMessage(tt.err), body.Error)
		}
	})

	t.Run("rejects other methods", func(t *testing.T) {
		t.Parallel()

		h := dochttp.NewHandler(&mock.Searcher{}, discardLogger())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search?q=x", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("serves extra handlers", func(t *testing.T) {
		t.Parallel()

		h := dochttp.NewHandler(&mock.Searcher{}, discardLogger())
		h.Handle("GET /metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "metrics")
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, "metrics", rec.Body.String())
	})
}
