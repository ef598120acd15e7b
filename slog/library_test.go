package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/mock"
	docslog "github.com/fwojciec/docidx/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingLibraryService(t *testing.T) {
	t.Parallel()

	t.Run("logs create with size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.LibraryService{
			CreateLibraryFn: func(_ context.Context, lib *docidx.Library) error {
				lib.ID = "lib-1"
				return nil
			},
		}

		svc := docslog.NewLoggingLibraryService(inner, debugLogger(&buf))
		lib := &docidx.Library{Name: "graphtest", ItemCount: 29, Data: []byte("12345")}
		require.NoError(t, svc.CreateLibrary(context.Background(), lib))

		assert.Equal(t, "lib-1", lib.ID)
		output := buf.String()
		assert.Contains(t, output, `msg="create library"`)
		assert.Contains(t, output, "name=graphtest")
		assert.Contains(t, output, "items=29")
		assert.Contains(t, output, "bytes=5")
	})

	t.Run("logs lookups and errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.LibraryService{
			FindLibraryByNameFn: func(_ context.Context, name string) (*docidx.Library, error) {
				return nil, docidx.Errorf(docidx.ENOTFOUND, "library %q not found", name)
			},
			FindLibrariesFn: func(context.Context, docidx.LibraryFilter) ([]*docidx.Library, error) {
				return []*docidx.Library{{Name: "a"}, {Name: "b"}}, nil
			},
		}

		svc := docslog.NewLoggingLibraryService(inner, debugLogger(&buf))
		_, err := svc.FindLibraryByName(context.Background(), "missing")
		assert.Equal(t, docidx.ENOTFOUND, docidx.ErrorCode(err))
		libs, err := svc.FindLibraries(context.Background(), docidx.LibraryFilter{})
		require.NoError(t, err)
		assert.Len(t, libs, 2)

		output := buf.String()
		assert.Contains(t, output, `msg="find library"`)
		assert.Contains(t, output, "name=missing")
		assert.Contains(t, output, "not_found")
		assert.Contains(t, output, `msg="find libraries"`)
		assert.Contains(t, output, "count=2")
	})

	t.Run("logs delete", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var deleted string
		inner := &mock.LibraryService{
			DeleteLibraryFn: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		svc := docslog.NewLoggingLibraryService(inner, debugLogger(&buf))
		require.NoError(t, svc.DeleteLibrary(context.Background(), "lib-1"))

		assert.Equal(t, "lib-1", deleted)
		assert.Contains(t, buf.String(), `msg="delete library"`)
		assert.Contains(t, buf.String(), "id=lib-1")
	})
}
