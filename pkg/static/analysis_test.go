package static_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvandyken/mkinit/pkg/initerrors"
	"github.com/pvandyken/mkinit/pkg/initgen"
	"github.com/pvandyken/mkinit/pkg/static"
)

// writePackage materializes a Python package fixture from a map of
// relative paths to file contents.
func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

func TestAnalyzePackage(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		files   map[string]string
		modname string
		want    static.Analysis
	}{
		"auto discovery": {
			files: map[string]string{
				"__init__.py": "",
				"core.py":     "def run():\n    pass\n\n\ndef stop():\n    pass\n",
				"util.py":     "WIDTH = 80\n\n\ndef _hidden():\n    pass\n",
				"_priv.py":    "def nope():\n    pass\n",
			},
			want: static.Analysis{
				Imports: []string{".core", ".util"},
				FromImports: []initgen.FromImport{
					{Module: ".core", Names: []string{"run", "stop"}},
					{Module: ".util", Names: []string{"WIDTH"}},
				},
			},
		},
		"submodules directive restricts discovery": {
			files: map[string]string{
				"__init__.py": "__submodules__ = ['core']\n",
				"core.py":     "def run():\n    pass\n",
				"util.py":     "def helper():\n    pass\n",
			},
			want: static.Analysis{
				Imports: []string{".core"},
				FromImports: []initgen.FromImport{
					{Module: ".core", Names: []string{"run"}},
				},
			},
		},
		"submodules dict pins attributes": {
			files: map[string]string{
				"__init__.py": "__submodules__ = {\n    'core': ['run'],\n    'util': None,\n}\n",
				"core.py":     "def run():\n    pass\n\n\ndef stop():\n    pass\n",
				"util.py":     "def helper():\n    pass\n",
			},
			want: static.Analysis{
				Imports: []string{".core", ".util"},
				FromImports: []initgen.FromImport{
					{Module: ".core", Names: []string{"run"}},
					{Module: ".util", Names: []string{"helper"}},
				},
			},
		},
		"module __all__ overrides name scan": {
			files: map[string]string{
				"__init__.py": "",
				"core.py":     "__all__ = ['run', '_special']\n\n\ndef run():\n    pass\n\n\ndef extra():\n    pass\n",
			},
			want: static.Analysis{
				Imports: []string{".core"},
				FromImports: []initgen.FromImport{
					{Module: ".core", Names: []string{"run", "_special"}},
				},
			},
		},
		"visibility directives": {
			files: map[string]string{
				"__init__.py": "__external__ = ['os.path.join']\n__private__ = ['core']\n__protected__ = ['run*']\n",
				"core.py":     "def run():\n    pass\n",
			},
			want: static.Analysis{
				Imports: []string{".core"},
				FromImports: []initgen.FromImport{
					{Module: ".core", Names: []string{"run"}},
				},
				Explicit:  []string{"os.path.join"},
				Private:   []string{"core"},
				Protected: []string{"run*"},
			},
		},
		"subpackages discovered": {
			files: map[string]string{
				"__init__.py":     "",
				"sub/__init__.py": "def nested():\n    pass\n",
				"empty/notes.txt": "not a package",
			},
			want: static.Analysis{
				Imports: []string{".sub"},
				FromImports: []initgen.FromImport{
					{Module: ".sub", Names: []string{"nested"}},
				},
			},
		},
		"class and annotated assignment names": {
			files: map[string]string{
				"__init__.py": "",
				"core.py":     "class Runner:\n    pass\n\n\nLIMIT: int = 5\n\nif LIMIT == 5:\n    pass\n",
			},
			want: static.Analysis{
				Imports: []string{".core"},
				FromImports: []initgen.FromImport{
					{Module: ".core", Names: []string{"Runner", "LIMIT"}},
				},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := writePackage(t, tc.files)

			got, err := static.AnalyzePackage(dir, "pkg")
			require.NoError(t, err)

			assert.Equal(t, "pkg", got.Modname)
			assert.Equal(t, tc.want.Imports, got.Imports)
			assert.Equal(t, tc.want.FromImports, got.FromImports)
			assert.Equal(t, tc.want.Explicit, got.Explicit)
			assert.Equal(t, tc.want.Private, got.Private)
			assert.Equal(t, tc.want.Protected, got.Protected)
		})
	}
}

func TestAnalyzePackage_DefaultModname(t *testing.T) {
	t.Parallel()

	dir := writePackage(t, map[string]string{"__init__.py": ""})

	got, err := static.AnalyzePackage(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), got.Modname)
}

func TestAnalyzePackage_NotADirectory(t *testing.T) {
	t.Parallel()

	dir := writePackage(t, map[string]string{"__init__.py": ""})

	_, err := static.AnalyzePackage(filepath.Join(dir, "__init__.py"), "")
	require.ErrorIs(t, err, initerrors.ErrNotAPackage)
}

func TestAnalyzePackage_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := static.AnalyzePackage(filepath.Join(t.TempDir(), "nope"), "")
	require.ErrorIs(t, err, initerrors.ErrNotAPackage)
}
