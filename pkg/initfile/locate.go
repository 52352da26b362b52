package initfile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pvandyken/mkinit/pkg/pysrc"
)

const (
	// StartTag marks the beginning of the generator-owned region.
	StartTag = "# <AUTOGEN_INIT>"

	// EndTag marks the end of the generator-owned region.
	EndTag = "# </AUTOGEN_INIT>"
)

// ErrBoundaryOrder indicates the located start line exceeded the end
// line. This is an internal-logic fault, not a data error.
var ErrBoundaryOrder = errors.New("boundary start exceeds end")

// implicitPrefixes are the line prefixes that protect preceding content
// when no explicit sentinel is present. A line whose trimmed text starts
// with any of these moves the insertion point past it.
var implicitPrefixes = []string{
	"from __future__",
	"__version__",
	"__submodules__",
	"__external__",
	"__private__",
	"__protected__",
	"#",
	`"""`,
	"'''",
}

// InsertRange is the half-open line range [Start, End) that generated
// content may occupy, plus the indentation required for injected text.
type InsertRange struct {
	Indent string
	Start  int
	End    int
}

// Locate scans lines and returns the range that generated content may
// occupy. An empty input yields the trivial full-clobber range.
//
// Explicit sentinels take absolute precedence: once a start tag is seen,
// implicit-prefix checks are disabled and everything up to the end tag
// (or EOF) belongs to the generator. The captured indentation is the text
// preceding the start tag's comment marker, so content injected inside a
// nested block keeps the block's indentation.
func Locate(lines []string) (InsertRange, error) {
	r := InsertRange{
		Start: 0,
		End:   len(lines),
	}

	if len(lines) == 0 {
		return r, nil
	}

	primary := pysrc.PrimaryLines(lines)

	explicit := false
	skipto := -1

	for lineno, line := range lines {
		if skipto >= 0 {
			if lineno != skipto {
				continue
			}

			skipto = -1
		}

		trimmed := strings.TrimSpace(line)

		if !explicit && hasImplicitPrefix(trimmed) {
			r.Start = lineno + 1

			// If this line begins a multi-line statement, preserve the
			// whole statement by skipping to the next primary line.
			if idx := slices.Index(primary, lineno); idx >= 0 {
				if idx+1 < len(primary) {
					skipto = primary[idx+1]
					r.Start = skipto
				} else {
					r.Start = r.End
				}
			}
		}

		if strings.HasPrefix(trimmed, StartTag) {
			r.Indent = line[:strings.Index(line, "#")]
			explicit = true
			r.Start = lineno + 1
		}

		if explicit && strings.HasPrefix(trimmed, EndTag) {
			r.End = lineno
		}
	}

	if r.Start > r.End {
		return InsertRange{}, fmt.Errorf("%w: [%d, %d)", ErrBoundaryOrder, r.Start, r.End)
	}

	return r, nil
}

func hasImplicitPrefix(trimmed string) bool {
	for _, p := range implicitPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}

	return false
}
