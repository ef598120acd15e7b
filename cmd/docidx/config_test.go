package main_test

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/docidx"
	main "github.com/fwojciec/docidx/cmd/docidx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults without a path", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, main.DefaultConfig(), cfg)
		assert.Positive(t, cfg.Search.Limit)
	})

	t.Run("overlays the file on the defaults", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "config.yaml", []byte(`
search:
  limit: 25
  kindPriority:
    const: 0
    mod: 5
log:
  level: debug
  format: json
http:
  timeout: 3s
`))

		cfg, err := main.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Search.Limit)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, main.DefaultConfig().HTTP.RateLimit, cfg.HTTP.RateLimit)

		policy, err := cfg.Search.Policy()
		require.NoError(t, err)
		assert.Equal(t, 0, policy.Rank(docidx.KindConstant))
		assert.Equal(t, 5, policy.Rank(docidx.KindModule))
		assert.Equal(t, 0, policy.Rank(docidx.KindFunction))
	})

	t.Run("rejects invalid settings", func(t *testing.T) {
		t.Parallel()

		for name, body := range map[string]string{
			"zero limit":   "search:\n  limit: 0\n",
			"unknown kind": "search:\n  kindPriority:\n    macro: 1\n",
			"bad level":    "log:\n  level: loud\n",
			"zero timeout": "http:\n  timeout: 0s\n",
			"not yaml":     "search: [\n",
		} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				_, err := main.LoadConfig(writeFile(t, "config.yaml", []byte(body)))

				assert.Equal(t, docidx.EINVALID, docidx.ErrorCode(err))
			})
		}
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}

func TestLogConfig_NewLogger(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON at the configured level", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger, err := main.LogConfig{Level: "warn", Format: "json"}.NewLogger(buf)
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown", "library", "graphtest")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"msg":"shown"`)
		assert.Contains(t, buf.String(), `"library":"graphtest"`)
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		t.Parallel()

		_, err := main.LogConfig{Format: "xml"}.NewLogger(&bytes.Buffer{})

		assert.Equal(t, docidx.EINVALID, docidx.ErrorCode(err))
	})
}
