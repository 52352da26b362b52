package static

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringList(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  []string
		err   bool
	}{
		"empty list": {
			input: `[]`,
			want:  []string{},
		},
		"single quoted": {
			input: `['alpha', 'beta']`,
			want:  []string{"alpha", "beta"},
		},
		"double quoted with trailing comma": {
			input: `["alpha", "beta",]`,
			want:  []string{"alpha", "beta"},
		},
		"tuple": {
			input: `('alpha', 'beta')`,
			want:  []string{"alpha", "beta"},
		},
		"multiline with comments": {
			input: "[\n    'alpha',  # first\n    'beta',\n]",
			want:  []string{"alpha", "beta"},
		},
		"escaped quote": {
			input: `['it\'s']`,
			want:  []string{"it's"},
		},
		"unterminated": {
			input: `['alpha'`,
			err:   true,
		},
		"non-string element": {
			input: `['alpha', 42]`,
			err:   true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := parseStringList(tc.input)
			if tc.err {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseSubmodSpec(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  []submodSpec
		err   bool
	}{
		"list of names": {
			input: `['core', 'util']`,
			want: []submodSpec{
				{Name: "core", Auto: true},
				{Name: "util", Auto: true},
			},
		},
		"dict with explicit attrs": {
			input: "{\n    'core': ['run', 'stop'],\n    'util': None,\n}",
			want: []submodSpec{
				{Name: "core", Attrs: []string{"run", "stop"}},
				{Name: "util", Auto: true},
			},
		},
		"dict empty attr list": {
			input: `{'core': []}`,
			want: []submodSpec{
				{Name: "core", Attrs: []string{}},
			},
		},
		"set literal": {
			input: `{'core', 'util'}`,
			want: []submodSpec{
				{Name: "core", Auto: true},
				{Name: "util", Auto: true},
			},
		},
		"unterminated dict": {
			input: `{'core': ['run']`,
			err:   true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := parseSubmodSpec(tc.input)
			if tc.err {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
