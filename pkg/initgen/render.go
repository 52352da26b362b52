package initgen

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pvandyken/mkinit/pkg/pyfmt"
)

// FromImport pairs a submodule path (usually relative, e.g. ".bar") with
// the symbol names it contributes, in discovery order.
type FromImport struct {
	Module string
	Names  []string
}

// Synthesizer renders declaration text. A formatter may be injected as
// an optional post-processing stage; when absent or unavailable, output
// is returned unformatted.
type Synthesizer struct {
	formatter pyfmt.Formatter
}

// SynthesizerOpt configures a [Synthesizer].
type SynthesizerOpt func(*Synthesizer)

// WithFormatter injects the post-formatting capability.
func WithFormatter(f pyfmt.Formatter) SynthesizerOpt {
	return func(s *Synthesizer) {
		s.formatter = f
	}
}

// NewSynthesizer creates a new [Synthesizer].
func NewSynthesizer(opts ...SynthesizerOpt) *Synthesizer {
	s := &Synthesizer{
		formatter: pyfmt.DefaultBlack,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Synthesize produces the replacement text for the generated region of
// an __init__.py: inclusion statements and an export manifest in
// conventional mode, or a deferred-resolution manifest plus shim in lazy
// mode. Output parts are separated by single blank lines; empty parts
// contribute nothing.
func (s *Synthesizer) Synthesize(
	modname string,
	imports []string,
	fromImports []FromImport,
	explicit, protected, private []string,
	opts *Options,
) (string, error) {
	if opts == nil {
		opts = NewOptions()
	}

	if opts.Relative {
		modname = "."
	}

	// Map each submodule's bare name to its original import path.
	submodToImport := make(map[string]string, len(imports))
	for _, imp := range imports {
		submodToImport[strings.TrimLeft(imp, ".")] = imp
	}

	protectedSet := make(map[string]struct{}, len(protected))
	for _, p := range protected {
		protectedSet[p] = struct{}{}
	}

	exposedSubmods := map[string]struct{}{}
	exposedAll := map[string]struct{}{}

	for name := range submodToImport {
		_, isProtected := protectedSet[name]
		if opts.WithMods || isProtected {
			// Explicit protection overrides submodule suppression.
			exposedSubmods[name] = struct{}{}
			exposedAll[name] = struct{}{}
		}
	}

	privateMatch := newMatcher(private)
	ppMatch := newMatcher(private, protected)

	// Entries whose submodule path matches a private-or-protected
	// name or pattern are dropped from attribute exposure entirely.
	retained := make([]FromImport, 0, len(fromImports))
	for _, fi := range fromImports {
		if !ppMatch.matches(fi.Module) {
			retained = append(retained, fi)
		}
	}

	var exposedFromImports []FromImport

	switch {
	case opts.WithAttrs:
		exposedFromImports = retained
	case len(protected) > 0:
		// Symbols survive only if explicitly protected.
		for _, fi := range retained {
			names := make([]string, 0, len(fi.Names))
			for _, n := range fi.Names {
				if _, ok := protectedSet[n]; ok {
					names = append(names, n)
				}
			}

			exposedFromImports = append(exposedFromImports, FromImport{Module: fi.Module, Names: names})
		}
	}

	nonEmpty := exposedFromImports[:0]
	for _, fi := range exposedFromImports {
		if len(fi.Names) > 0 {
			nonEmpty = append(nonEmpty, fi)
		}
	}
	exposedFromImports = nonEmpty

	for _, fi := range exposedFromImports {
		for _, n := range fi.Names {
			if !privateMatch.matches(n) {
				exposedAll[n] = struct{}{}
			}
		}
	}

	for _, e := range explicit {
		exposedAll[e] = struct{}{}
	}

	parts := []string{}
	appendPart := func(part string) {
		if part == "" {
			return
		}

		if len(parts) > 0 {
			parts = append(parts, "")
		}

		parts = append(parts, part)
	}

	if opts.LazyImport {
		boilerplate := opts.LazyBoilerplate
		if boilerplate == "" {
			boilerplate = defaultLazyBoilerplate
		}

		appendPart(boilerplate)

		// Deferred mode with no explicit exports has no discoverable
		// entry points to advertise besides attributes.
		manifestSubmods := []string{}
		if len(explicit) > 0 {
			manifestSubmods = setKeys(exposedSubmods)
		}

		appendPart(renderLazyManifest(manifestSubmods, exposedFromImports))
	} else {
		appendPart(renderImports(imports, exposedSubmods, modname))
		appendPart(renderFromImports(exposedFromImports, modname))
	}

	if opts.WithAll {
		if opts.LazyImport {
			appendPart(dirOverride)
		}

		appendPart(renderAll(setKeys(exposedAll)))
	}

	text := strings.Join(parts, "\n")

	if opts.UseBlack && s.formatter != nil {
		formatted, err := s.formatter.Format(text)
		if errors.Is(err, pyfmt.ErrUnavailable) {
			return text, nil
		}

		if err != nil {
			return "", fmt.Errorf("post-format: %w", err)
		}

		return formatted, nil
	}

	return text, nil
}

// renderImports emits one inclusion statement per exposed submodule, in
// discovery order.
func renderImports(imports []string, exposed map[string]struct{}, modname string) string {
	stmts := []string{}

	for _, imp := range imports {
		name := strings.TrimLeft(imp, ".")
		if _, ok := exposed[name]; !ok {
			continue
		}

		if strings.HasPrefix(imp, ".") {
			stmts = append(stmts, fmt.Sprintf("from %s import %s", modname, name))
		} else {
			stmts = append(stmts, "import "+imp)
		}
	}

	return strings.Join(stmts, "\n")
}

// renderFromImports emits one width-wrapped inclusion statement per
// retained entry, symbols in discovery order, trailing-comma terminated.
func renderFromImports(fromImports []FromImport, modname string) string {
	rootmod := modname
	if rootmod == "." {
		// The dot is already carried by the relative module path.
		rootmod = ""
	}

	stmts := []string{}

	for _, fi := range fromImports {
		if len(fi.Names) == 0 {
			continue
		}

		normname := fi.Module
		if strings.HasPrefix(fi.Module, ".") {
			normname = rootmod + fi.Module
		}

		lhs := fmt.Sprintf("from %s import (", normname)
		rhs := strings.Join(fi.Names, ", ") + ",)"
		stmts = append(stmts, packedRHS(lhs, rhs))
	}

	return strings.Join(stmts, "\n")
}

// renderAll emits the sorted, de-duplicated __all__ assignment.
func renderAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}

	return packedRHS("__all__ = [", strings.Join(quoted, ", ")+"]")
}

func setKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
