package initgen

import (
	"path"
	"strings"
)

// matcher tests names against a visibility set: exact names plus glob
// patterns (a name containing a wildcard is treated as a pattern).
// Leading dots are stripped before matching, so relative submodule paths
// and bare names compare equally.
type matcher struct {
	exact map[string]struct{}
	pats  []string
}

func newMatcher(names ...[]string) matcher {
	m := matcher{exact: map[string]struct{}{}}

	for _, set := range names {
		for _, n := range set {
			if strings.ContainsAny(n, "*?[") {
				m.pats = append(m.pats, n)

				continue
			}

			m.exact[n] = struct{}{}
		}
	}

	return m
}

func (m matcher) matches(name string) bool {
	name = strings.TrimLeft(name, ".")

	if _, ok := m.exact[name]; ok {
		return true
	}

	for _, pat := range m.pats {
		if ok, err := path.Match(pat, name); err == nil && ok {
			return true
		}
	}

	return false
}
