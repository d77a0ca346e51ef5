package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/taylor-green/internal/config"
	"github.com/couchcryptid/taylor-green/internal/observability"
)

func TestApp_RunPrintsErrorLines(t *testing.T) {
	var out bytes.Buffer
	a := newApp(testConfig(), &out, discardLogger(), observability.NewMetricsForTesting())
	defer a.close()

	res, err := a.run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Errors, 4)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Maximum error in u velocity computation: "))
	assert.True(t, strings.HasPrefix(lines[3], "Maximum error in vorticity computation: "))
}

func TestRenderFigures_None(t *testing.T) {
	cfg := testConfig()
	cfg.RenderMode = config.RenderNone
	cfg.RenderDir = filepath.Join(t.TempDir(), "plots")

	a := newApp(cfg, &bytes.Buffer{}, discardLogger(), observability.NewMetricsForTesting())
	res, err := a.run(context.Background())
	require.NoError(t, err)

	require.NoError(t, renderFigures(cfg, res, discardLogger()))
	_, err = os.Stat(cfg.RenderDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRenderFigures_PNG(t *testing.T) {
	cfg := testConfig()
	cfg.RenderMode = config.RenderPNG
	cfg.RenderDir = t.TempDir()
	cfg.Quiver = true

	a := newApp(cfg, &bytes.Buffer{}, discardLogger(), observability.NewMetricsForTesting())
	res, err := a.run(context.Background())
	require.NoError(t, err)

	require.NoError(t, renderFigures(cfg, res, discardLogger()))

	entries, err := os.ReadDir(cfg.RenderDir)
	require.NoError(t, err)
	assert.Len(t, entries, 13)
	for _, e := range entries {
		assert.Equal(t, ".png", filepath.Ext(e.Name()))
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"run", "serve", "validate"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestQuietLogLevel(t *testing.T) {
	t.Run("unset defaults to warn", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		require.NoError(t, os.Unsetenv("LOG_LEVEL"))

		cfg := testConfig()
		cfg.LogLevel = "info"
		quietLogLevel(cfg)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("explicit level wins", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")

		cfg := testConfig()
		cfg.LogLevel = "debug"
		quietLogLevel(cfg)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}
