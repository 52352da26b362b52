package initcmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pvandyken/mkinit/pkg/initerrors"
	"github.com/pvandyken/mkinit/pkg/initgen"
	"github.com/pvandyken/mkinit/pkg/paths"
	"github.com/pvandyken/mkinit/pkg/pyfmt"
)

var (
	ErrPathResolution = errors.New("path resolution failed")
	ErrGenerateFailed = errors.New("generation failed")
)

// PyPackage drives __init__.py generation rooted at BasePath. It is
// configured once and then used for a single Generate, a recursive
// Update, or a staleness Check.
type PyPackage struct {
	Options       *initgen.Options
	Formatter     pyfmt.Formatter
	DiffWriter    io.Writer
	PreviewWriter io.Writer
	BasePath      string
	absBasePath   string
	repoRoot      string
	subs          []func(any)
	Timeout       time.Duration
	mu            sync.Mutex
	Recursive     bool
	Write         bool
}

func NewPyPackage(basePath string, opts ...PyPackageOpt) (*PyPackage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get absolute path: %w", ErrPathResolution, err)
	}

	slog.Debug("looking for repository root", slog.String("path", basePath))

	repoRoot, err := paths.FindRepoRoot(absBasePath)
	if errors.Is(err, initerrors.ErrFileNotFound) {
		// Not in a repository; the base path bounds everything.
		repoRoot = absBasePath
	} else if err != nil {
		return nil, fmt.Errorf("%w: failed to find repository root: %w", ErrPathResolution, err)
	}

	slog.Debug("found repository root", slog.String("path", repoRoot))

	p := &PyPackage{
		BasePath:    basePath,
		absBasePath: absBasePath,
		repoRoot:    repoRoot,
		Options:     initgen.NewOptions(),
		Timeout:     5 * time.Minute,
		subs:        []func(any){},
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.Formatter == nil {
		if p.Options.UseBlack {
			p.Formatter = pyfmt.DefaultBlack
		} else {
			p.Formatter = pyfmt.DefaultNone
		}
	}

	return p, nil
}

type PyPackageOpt func(*PyPackage)

func WithOptions(o *initgen.Options) PyPackageOpt {
	return func(p *PyPackage) {
		p.Options = o
	}
}

func WithFormatter(f pyfmt.Formatter) PyPackageOpt {
	return func(p *PyPackage) {
		p.Formatter = f
	}
}

func WithRecursive(recursive bool) PyPackageOpt {
	return func(p *PyPackage) {
		p.Recursive = recursive
	}
}

func WithWrite(write bool) PyPackageOpt {
	return func(p *PyPackage) {
		p.Write = write
	}
}

func WithTimeout(timeout time.Duration) PyPackageOpt {
	return func(p *PyPackage) {
		p.Timeout = timeout
	}
}

// WithDiffWriter streams a colored line diff for every changed package
// to w.
func WithDiffWriter(w io.Writer) PyPackageOpt {
	return func(p *PyPackage) {
		p.DiffWriter = w
	}
}

// WithPreviewWriter streams the full generated file for every package
// to w, the dry-run output mode.
func WithPreviewWriter(w io.Writer) PyPackageOpt {
	return func(p *PyPackage) {
		p.PreviewWriter = w
	}
}

func (p *PyPackage) broadcastEvent(evt any) {
	for _, sub := range p.subs {
		sub(evt)
	}
}

// Subscribe registers f to receive progress events. All registrations
// must happen before Update or Check is called.
func (p *PyPackage) Subscribe(f func(any)) {
	p.subs = append(p.subs, f)
}

// packages resolves the set of package directories to generate for.
// Recursive mode walks the base path; otherwise the base path itself
// must be a package.
func (p *PyPackage) packages() ([]string, error) {
	if p.Recursive {
		pkgs, err := paths.FindPackages(p.absBasePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPathResolution, err)
		}

		return pkgs, nil
	}

	return []string{p.absBasePath}, nil
}

// modname derives the dotted module name for pkgPath from its topmost
// enclosing package. A package directly under the repository root with
// no parent package keeps its directory name.
func (p *PyPackage) modname(pkgPath string) string {
	top, err := paths.FindTopPackage(p.repoRoot, pkgPath)
	if err != nil {
		return filepath.Base(pkgPath)
	}

	rel, err := filepath.Rel(filepath.Dir(top), pkgPath)
	if err != nil {
		return filepath.Base(pkgPath)
	}

	return strings.ReplaceAll(rel, string(filepath.Separator), ".")
}
