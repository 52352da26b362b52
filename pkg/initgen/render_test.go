package initgen_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvandyken/mkinit/pkg/initgen"
	"github.com/pvandyken/mkinit/pkg/pyfmt"
)

func newSynth() *initgen.Synthesizer {
	// No formatter capability; rendering is exercised unformatted.
	return initgen.NewSynthesizer(initgen.WithFormatter(pyfmt.NewNone()))
}

func TestSynthesize_Conventional(t *testing.T) {
	t.Parallel()

	got, err := newSynth().Synthesize(
		"foo",
		[]string{".bar", ".baz"},
		[]initgen.FromImport{{Module: ".bar", Names: []string{"func1", "func2"}}},
		nil, nil, nil,
		initgen.NewOptions(),
	)
	require.NoError(t, err)

	want := strings.Join([]string{
		"from foo import bar",
		"from foo import baz",
		"",
		"from foo.bar import (func1, func2,)",
		"",
		"__all__ = ['bar', 'baz', 'func1', 'func2']",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestSynthesize_Relative(t *testing.T) {
	t.Parallel()

	opts := initgen.NewOptions()
	opts.Relative = true

	got, err := newSynth().Synthesize(
		"foo",
		[]string{".bar"},
		[]initgen.FromImport{{Module: ".bar", Names: []string{"func1"}}},
		nil, nil, nil,
		opts,
	)
	require.NoError(t, err)

	want := strings.Join([]string{
		"from . import bar",
		"",
		"from .bar import (func1,)",
		"",
		"__all__ = ['bar', 'func1']",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestSynthesize_AbsoluteImportPassedThrough(t *testing.T) {
	t.Parallel()

	got, err := newSynth().Synthesize(
		"foo",
		[]string{"os.path"},
		nil,
		nil, nil, nil,
		initgen.NewOptions(),
	)
	require.NoError(t, err)

	assert.Contains(t, got, "import os.path")
	assert.NotContains(t, got, "from foo import os.path")
}

func TestSynthesize_Lazy(t *testing.T) {
	t.Parallel()

	opts := initgen.NewOptions()
	opts.LazyImport = true

	got, err := newSynth().Synthesize(
		"foo",
		[]string{".bar", ".baz"},
		[]initgen.FromImport{{Module: ".bar", Names: []string{"func1", "func2"}}},
		nil, nil, nil,
		opts,
	)
	require.NoError(t, err)

	assert.Contains(t, got, "def lazy_import(module_name, submodules, submod_attrs):")
	assert.Contains(t, got, "__getattr__ = lazy_import(")
	// No explicit exports configured: the advertised submodule set is empty.
	assert.Contains(t, got, "submodules=set(),")
	assert.Contains(t, got, "'bar': [\n            'func1',\n            'func2',\n        ],")
	assert.Contains(t, got, "def __dir__():\n    return __all__")
	assert.Contains(t, got, "__all__ = ['bar', 'baz', 'func1', 'func2']")
}

func TestSynthesize_LazyWithExplicitExports(t *testing.T) {
	t.Parallel()

	opts := initgen.NewOptions()
	opts.LazyImport = true

	got, err := newSynth().Synthesize(
		"foo",
		[]string{".bar", ".baz"},
		nil,
		[]string{"something"}, nil, nil,
		opts,
	)
	require.NoError(t, err)

	assert.Contains(t, got, "submodules={\n        'bar',\n        'baz',\n    },")
	assert.Contains(t, got, "submod_attrs={},")
	assert.Contains(t, got, "'something'")
}

func TestSynthesize_LazyCustomBoilerplate(t *testing.T) {
	t.Parallel()

	opts := initgen.NewOptions()
	opts.LazyImport = true
	opts.LazyBoilerplate = "from importlib import lazy_import"

	got, err := newSynth().Synthesize(
		"foo",
		[]string{".bar"},
		[]initgen.FromImport{{Module: ".bar", Names: []string{"func1"}}},
		nil, nil, nil,
		opts,
	)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "from importlib import lazy_import\n"),
		"custom boilerplate leads the output verbatim")
	assert.NotContains(t, got, "def lazy_import(")
	assert.Contains(t, got, "__getattr__ = lazy_import(")
	assert.Contains(t, got, "def __dir__():")
}

func TestSynthesize_Visibility(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		configure    func(opts *initgen.Options)
		protected    []string
		private      []string
		wantContains []string
		wantAbsent   []string
		wantAll      []string
	}{
		"private symbol excluded from manifest but still rendered": {
			private: []string{"func2"},
			wantContains: []string{
				"from foo.bar import (func1, func2,)",
			},
			wantAll: []string{"bar", "baz", "func1"},
		},
		"private glob drops whole submodule from attributes": {
			private: []string{"ba*"},
			wantContains: []string{
				"from foo import bar",
				"from foo import baz",
			},
			wantAbsent: []string{"from foo.bar import"},
			wantAll:    []string{"bar", "baz"},
		},
		"no attrs narrows to protected subset": {
			configure: func(opts *initgen.Options) { opts.WithAttrs = false },
			protected: []string{"func1"},
			wantContains: []string{
				"from foo.bar import (func1,)",
			},
			wantAbsent: []string{"func2"},
			wantAll:    []string{"bar", "baz", "func1"},
		},
		"no attrs and no protected drops symbols": {
			configure:  func(opts *initgen.Options) { opts.WithAttrs = false },
			wantAbsent: []string{"from foo.bar import ("},
			wantAll:    []string{"bar", "baz"},
		},
		"no mods but protected submodule still exposed": {
			configure: func(opts *initgen.Options) { opts.WithMods = false },
			protected: []string{"bar"},
			wantContains: []string{
				"from foo import bar",
			},
			wantAbsent: []string{"from foo import baz"},
			wantAll:    []string{"bar", "func1", "func2"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := initgen.NewOptions()
			if tc.configure != nil {
				tc.configure(opts)
			}

			got, err := newSynth().Synthesize(
				"foo",
				[]string{".bar", ".baz"},
				[]initgen.FromImport{{Module: ".bar", Names: []string{"func1", "func2"}}},
				nil, tc.protected, tc.private,
				opts,
			)
			require.NoError(t, err)

			for _, want := range tc.wantContains {
				assert.Contains(t, got, want)
			}

			for _, absent := range tc.wantAbsent {
				assert.NotContains(t, got, absent)
			}

			wantAll := make([]string, len(tc.wantAll))
			for i, n := range tc.wantAll {
				wantAll[i] = "'" + n + "'"
			}

			assert.Contains(t, got, "__all__ = ["+strings.Join(wantAll, ", ")+"]")
		})
	}
}

func TestSynthesize_ManifestCompleteness(t *testing.T) {
	t.Parallel()

	// Every rendered, non-private symbol appears exactly once, sorted,
	// in the export manifest.
	got, err := newSynth().Synthesize(
		"pkg",
		[]string{".m1", ".m2"},
		[]initgen.FromImport{
			{Module: ".m1", Names: []string{"zeta", "alpha"}},
			{Module: ".m2", Names: []string{"beta", "_hidden"}},
		},
		nil, nil, []string{"_*"},
		initgen.NewOptions(),
	)
	require.NoError(t, err)

	idx := strings.Index(got, "__all__ = [")
	require.GreaterOrEqual(t, idx, 0)

	manifest := got[idx:]
	names := []string{"alpha", "beta", "m1", "m2", "zeta"}
	require.True(t, sort.StringsAreSorted(names))

	for _, n := range names {
		assert.Equal(t, 1, strings.Count(manifest, "'"+n+"'"), "symbol %q", n)
	}

	assert.NotContains(t, manifest, "_hidden")
	// Private symbols still appear in the rendered attribute inclusion.
	assert.Contains(t, got, "_hidden,")
}

func TestSynthesize_EmptyInputs(t *testing.T) {
	t.Parallel()

	got, err := newSynth().Synthesize("foo", nil, nil, nil, nil, nil, initgen.NewOptions())
	require.NoError(t, err)

	assert.Equal(t, "__all__ = []", got)
}
