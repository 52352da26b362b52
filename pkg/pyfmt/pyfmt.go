package pyfmt

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnavailable indicates no formatter executable could be found. It is
// recovered silently by callers; rendering proceeds unformatted.
var ErrUnavailable = errors.New("formatter unavailable")

// ErrFormat indicates the formatter ran but rejected its input.
var ErrFormat = errors.New("format")

// Formatter reformats rendered Python source. Implementations are
// injected into the synthesizer as an optional post-processing stage.
type Formatter interface {
	Format(src string) (string, error)
}

var (
	// DefaultBlack formats through the `black` executable on PATH.
	DefaultBlack = NewBlack()

	// DefaultNone passes text through unchanged.
	DefaultNone = NewNone()

	_ Formatter = DefaultBlack
	_ Formatter = DefaultNone
)

// Black formats Python source by piping it through the black code
// formatter. The executable is resolved once at construction; a missing
// executable surfaces as [ErrUnavailable] from Format.
type Black struct {
	path string
}

// NewBlack creates a new [Black], resolving the executable from PATH.
func NewBlack() *Black {
	path, err := exec.LookPath("black")
	if err != nil {
		return &Black{}
	}

	return &Black{path: path}
}

func (b *Black) Format(src string) (string, error) {
	if b.path == "" {
		return "", ErrUnavailable
	}

	cmd := exec.Command(b.path, "-", "--quiet") //nolint:gosec // Path resolved via LookPath.
	cmd.Stdin = strings.NewReader(src)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %w: %s", ErrFormat, err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

// None is the absent-formatter variant.
type None struct{}

// NewNone creates a new [None].
func NewNone() *None {
	return &None{}
}

func (n *None) Format(src string) (string, error) {
	return src, nil
}
