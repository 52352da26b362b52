package initcmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvandyken/mkinit/pkg/initcmd"
	"github.com/pvandyken/mkinit/pkg/initerrors"
	"github.com/pvandyken/mkinit/pkg/initgen"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, initcmd.ConfigFileName),
		[]byte("lazy: true\nrelative: true\nattrs: false\n"),
		0o644,
	))

	cfg, err := initcmd.LoadConfig(dir, dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	opts := initgen.NewOptions()
	cfg.Apply(opts)

	assert.True(t, opts.LazyImport)
	assert.True(t, opts.Relative)
	assert.False(t, opts.WithAttrs)
	assert.True(t, opts.WithMods)
	assert.True(t, opts.WithAll)
}

func TestLoadConfig_FallsBackToRepoRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, initcmd.ConfigFileName),
		[]byte("black: true\n"),
		0o644,
	))

	cfg, err := initcmd.LoadConfig(dir, root)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.True(t, cfg.Black)
}

func TestLoadConfig_Missing(t *testing.T) {
	t.Parallel()

	cfg, err := initcmd.LoadConfig(t.TempDir(), t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, initcmd.ConfigFileName),
		[]byte("lazzy: true\n"),
		0o644,
	))

	_, err := initcmd.LoadConfig(dir, dir)
	require.ErrorIs(t, err, initerrors.ErrInvalidFormat)
}

func TestLoadConfig_Empty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, initcmd.ConfigFileName), []byte(""), 0o644))

	cfg, err := initcmd.LoadConfig(dir, dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	opts := initgen.NewOptions()
	cfg.Apply(opts)
	assert.True(t, opts.WithAttrs)
}
