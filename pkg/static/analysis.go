package static

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pvandyken/mkinit/pkg/initerrors"
	"github.com/pvandyken/mkinit/pkg/initfile"
	"github.com/pvandyken/mkinit/pkg/initgen"
	"github.com/pvandyken/mkinit/pkg/pysrc"
)

// Analysis is the discovered aggregation input for one package: the
// submodule inclusion list, the per-submodule symbols, and any
// visibility sets declared in the existing __init__.py.
type Analysis struct {
	Modname     string
	Imports     []string
	FromImports []initgen.FromImport
	Explicit    []string
	Protected   []string
	Private     []string
}

var (
	identRe  = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	defRe    = regexp.MustCompile(`^(?:async\s+)?def\s+([A-Za-z_]\w*)`)
	classRe  = regexp.MustCompile(`^class\s+([A-Za-z_]\w*)`)
	assignRe = regexp.MustCompile(`^([A-Za-z_]\w*)\s*(?::[^=]+)?=(?:[^=]|$)`)
)

// AnalyzePackage discovers the submodules and importable symbols of the
// Python package at pkgPath. An empty modname derives the module name
// from the directory name. Analysis is purely textual.
func AnalyzePackage(pkgPath, modname string) (*Analysis, error) {
	fi, err := os.Stat(pkgPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", initerrors.ErrNotAPackage, pkgPath, err)
	}

	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", initerrors.ErrNotAPackage, pkgPath)
	}

	if modname == "" {
		modname = filepath.Base(pkgPath)
	}

	initLines, err := initfile.ReadLines(filepath.Join(pkgPath, "__init__.py"))
	if err != nil {
		return nil, err
	}

	dir := parseDirectives(initLines)

	specs := dir.submodules
	if specs == nil {
		specs, err = discoverSubmodules(pkgPath)
		if err != nil {
			return nil, err
		}
	}

	a := &Analysis{
		Modname:   modname,
		Explicit:  dir.external,
		Protected: dir.protected,
		Private:   dir.private,
	}

	for _, spec := range specs {
		attrs := spec.Attrs
		if spec.Auto {
			attrs, err = moduleAttrs(pkgPath, spec.Name)
			if err != nil {
				return nil, err
			}
		}

		a.Imports = append(a.Imports, "."+spec.Name)
		a.FromImports = append(a.FromImports, initgen.FromImport{
			Module: "." + spec.Name,
			Names:  attrs,
		})
	}

	slog.Debug("analyzed package",
		slog.String("path", pkgPath),
		slog.String("modname", modname),
		slog.Int("submodules", len(a.Imports)),
	)

	return a, nil
}

// directives are the generation-control variables declared in an
// existing __init__.py. A nil submodules slice means auto discovery.
type directives struct {
	submodules []submodSpec
	external   []string
	private    []string
	protected  []string
}

// parseDirectives extracts control variables from __init__.py lines,
// joining multi-line statements before parsing their literal values.
// Malformed declarations are skipped with a warning rather than
// aborting generation.
func parseDirectives(lines []string) directives {
	d := directives{}

	for name, stmt := range statements(lines) {
		value, ok := assignedValue(stmt, name)
		if !ok {
			continue
		}

		var err error

		switch name {
		case "__submodules__":
			d.submodules, err = parseSubmodSpec(value)
		case "__external__":
			d.external, err = parseStringList(value)
		case "__private__":
			d.private, err = parseStringList(value)
		case "__protected__":
			d.protected, err = parseStringList(value)
		}

		if err != nil {
			slog.Warn("skipping malformed declaration",
				slog.String("name", name),
				slog.Any("error", err),
			)
		}
	}

	return d
}

// statements yields (directive name, full statement text) for each
// top-level control-variable assignment, with continuation lines joined.
func statements(lines []string) map[string]string {
	primary := pysrc.PrimaryLines(lines)
	stmts := map[string]string{}

	for i, p := range primary {
		end := len(lines)
		if i+1 < len(primary) {
			end = primary[i+1]
		}

		for _, name := range []string{"__submodules__", "__external__", "__private__", "__protected__"} {
			if strings.HasPrefix(lines[p], name) {
				stmts[name] = strings.Join(lines[p:end], "\n")
			}
		}
	}

	return stmts
}

// assignedValue returns the text after the = of an assignment to name.
func assignedValue(stmt, name string) (string, bool) {
	rest := strings.TrimPrefix(stmt, name)
	rest = strings.TrimLeft(rest, " \t")

	if !strings.HasPrefix(rest, "=") {
		return "", false
	}

	return strings.TrimLeft(rest[1:], " \t"), true
}

// discoverSubmodules enumerates the package directory: every
// non-underscore .py module and every subpackage (a directory holding
// an __init__.py). Directory order gives stable, deterministic output.
func discoverSubmodules(pkgPath string) ([]submodSpec, error) {
	entries, err := os.ReadDir(pkgPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", initerrors.ErrReadFile, pkgPath, err)
	}

	specs := []submodSpec{}

	for _, entry := range entries {
		name := entry.Name()

		if entry.IsDir() {
			if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || !identRe.MatchString(name) {
				continue
			}

			if _, err := os.Stat(filepath.Join(pkgPath, name, "__init__.py")); err != nil {
				continue
			}

			specs = append(specs, submodSpec{Name: name, Auto: true})

			continue
		}

		base, ok := strings.CutSuffix(name, ".py")
		if !ok || strings.HasPrefix(base, "_") || !identRe.MatchString(base) {
			continue
		}

		specs = append(specs, submodSpec{Name: base, Auto: true})
	}

	return specs, nil
}

// moduleAttrs returns the importable top-level names of a submodule, in
// source order. A module declaring __all__ restricts discovery to that
// literal list; otherwise top-level def, class, and assignment names not
// starting with an underscore are collected.
func moduleAttrs(pkgPath, name string) ([]string, error) {
	path := filepath.Join(pkgPath, name+".py")
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(pkgPath, name, "__init__.py")
	}

	lines, err := initfile.ReadLines(path)
	if err != nil {
		return nil, err
	}

	return topLevelNames(lines), nil
}

func topLevelNames(lines []string) []string {
	primary := pysrc.PrimaryLines(lines)
	names := []string{}
	seen := map[string]struct{}{}

	add := func(name string) {
		if strings.HasPrefix(name, "_") {
			return
		}

		if _, ok := seen[name]; ok {
			return
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	for i, p := range primary {
		line := lines[p]
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}

		if strings.HasPrefix(line, "__all__") {
			end := len(lines)
			if i+1 < len(primary) {
				end = primary[i+1]
			}

			stmt := strings.Join(lines[p:end], "\n")
			if value, ok := assignedValue(stmt, "__all__"); ok {
				if declared, err := parseStringList(value); err == nil {
					return declared
				}
			}

			continue
		}

		if m := defRe.FindStringSubmatch(line); m != nil {
			add(m[1])

			continue
		}

		if m := classRe.FindStringSubmatch(line); m != nil {
			add(m[1])

			continue
		}

		if m := assignRe.FindStringSubmatch(line); m != nil {
			add(m[1])
		}
	}

	return names
}
