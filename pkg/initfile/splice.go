package initfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/pvandyken/mkinit/pkg/initerrors"
	"github.com/pvandyken/mkinit/pkg/pysrc"
	"github.com/pvandyken/mkinit/pkg/syncs"
)

// Compose returns the new full file text: preserved lines before r.Start,
// the indented body, and preserved lines from r.End onward. Trailing
// whitespace collapses to a single trailing newline.
func Compose(lines []string, body string, r InsertRange) string {
	parts := make([]string, 0, len(lines)+1)
	parts = append(parts, lines[:r.Start]...)
	parts = append(parts, Indent(body, r.Indent))
	parts = append(parts, lines[r.End:]...)

	text := strings.Join(parts, "\n")

	return strings.TrimRight(text, " \t\n") + "\n"
}

// Indent prefixes every line of text with indent, stripping trailing
// whitespace left on blank lines.
func Indent(text, indent string) string {
	indented := indent + strings.ReplaceAll(text, "\n", "\n"+indent)

	lines := strings.Split(indented, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.Join(lines, "\n")
}

// ReadLines reads path and returns its physical lines. A missing file is
// treated as empty, giving the pure-insertion case.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Caller-provided target path.
	if os.IsNotExist(err) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", initerrors.ErrReadFile, path, err)
	}

	return pysrc.SplitLines(string(data)), nil
}

// File is a concurrency-safe init file writer. Writes to distinct
// paths proceed in parallel; writes to the same path serialize.
var File = &file{}

type file struct {
	locks syncs.KeyLock
}

// Write writes text to path, replacing any existing content.
func (f *file) Write(path, text string) error {
	f.locks.Lock(path)
	defer f.locks.Unlock(path)

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil { //nolint:gosec // Generated source file.
		return fmt.Errorf("%w %q: %w", initerrors.ErrWriteFile, path, err)
	}

	return nil
}
