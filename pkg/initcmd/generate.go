package initcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"

	"github.com/pvandyken/mkinit/pkg/initfile"
	"github.com/pvandyken/mkinit/pkg/initgen"
	"github.com/pvandyken/mkinit/pkg/static"
)

var (
	ErrWorkerFailed = errors.New("generation worker failed")
	ErrStale        = errors.New("file is stale")
)

// Result describes the outcome of generation for one package.
type Result struct {
	Package string
	Path    string
	Old     string
	New     string
	Changed bool
}

// Generate produces the updated __init__.py text for one package
// without touching the filesystem beyond reads.
func (p *PyPackage) Generate(pkgPath string) (*Result, error) {
	analysis, err := static.AnalyzePackage(pkgPath, p.modname(pkgPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}

	synth := initgen.NewSynthesizer(initgen.WithFormatter(p.Formatter))

	body, err := synth.Synthesize(
		analysis.Modname,
		analysis.Imports,
		analysis.FromImports,
		analysis.Explicit,
		analysis.Protected,
		analysis.Private,
		p.Options,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}

	initPath := filepath.Join(pkgPath, "__init__.py")

	lines, err := initfile.ReadLines(initPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}

	rng, err := initfile.Locate(lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrGenerateFailed, initPath, err)
	}

	text := initfile.Compose(lines, body, rng)

	old := ""
	if raw, err := os.ReadFile(initPath); err == nil {
		old = string(raw)
	}

	return &Result{
		Package: analysis.Modname,
		Path:    initPath,
		Old:     old,
		New:     text,
		Changed: text != old,
	}, nil
}

// generateOne generates for a single package and, in write mode,
// persists the result when it differs from the file on disk.
func (p *PyPackage) generateOne(pkgPath string) (*Result, error) {
	res, err := p.Generate(pkgPath)
	if err != nil {
		return nil, err
	}

	if p.PreviewWriter != nil {
		p.mu.Lock()
		_, werr := io.WriteString(p.PreviewWriter, res.New)
		p.mu.Unlock()

		if werr != nil {
			return nil, fmt.Errorf("write preview: %w", werr)
		}
	}

	if res.Changed && p.DiffWriter != nil {
		p.mu.Lock()
		_, werr := io.WriteString(p.DiffWriter, res.Diff())
		p.mu.Unlock()

		if werr != nil {
			return nil, fmt.Errorf("write diff: %w", werr)
		}
	}

	if p.Write && res.Changed {
		p.mu.Lock()
		defer p.mu.Unlock()

		if err := initfile.File.Write(res.Path, res.New); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// Update generates __init__.py files for every resolved package,
// fanning out across a bounded worker pool. Progress is reported to
// subscribers; the first returned error aggregates all failures.
func (p *PyPackage) Update() error {
	return p.run(func(*Result) error { return nil })
}

// Check runs generation without writing and fails if any package's
// __init__.py differs from what generation would produce.
func (p *PyPackage) Check() error {
	write := p.Write
	p.Write = false

	defer func() { p.Write = write }()

	return p.run(func(res *Result) error {
		if res.Changed {
			return fmt.Errorf("%w: %s", ErrStale, res.Path)
		}

		return nil
	})
}

// packageLevels partitions package paths by directory depth, deepest
// first, preserving discovery order within each level. Subpackages must
// be written before their parents: a parent's synthesized view of a
// subpackage comes from the subpackage's __init__.py, so generating
// them together would leave the parent stale after a single pass.
func packageLevels(pkgs []string) [][]string {
	byDepth := map[int][]string{}
	depths := []int{}

	for _, pkg := range pkgs {
		d := strings.Count(pkg, string(filepath.Separator))
		if _, ok := byDepth[d]; !ok {
			depths = append(depths, d)
		}

		byDepth[d] = append(byDepth[d], pkg)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(depths)))

	levels := make([][]string, 0, len(depths))
	for _, d := range depths {
		levels = append(levels, byDepth[d])
	}

	return levels
}

func (p *PyPackage) run(verify func(*Result) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()

	logger := slog.With(
		slog.String("cmd", "gen"),
		slog.String("path", p.BasePath),
	)

	pkgs, err := p.packages()
	if err != nil {
		return err
	}

	workerCount := int64(runtime.GOMAXPROCS(0))
	pkgCount := len(pkgs)
	sem := semaphore.NewWeighted(workerCount)
	errChan := make(chan error, pkgCount)

	p.broadcastEvent(EventSetPackageTotal(pkgCount))

	for _, level := range packageLevels(pkgs) {
		for _, pkgPath := range level {
			pkgLogger := logger.With(slog.String("package", pkgPath))

			err := sem.Acquire(ctx, 1)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWorkerFailed, err)
			}

			p.broadcastEvent(EventGeneratingPackage(pkgPath))

			go func() {
				defer sem.Release(1)

				pkgLogger.Info("generating package")

				res, err := p.generateOne(pkgPath)
				if err == nil {
					err = verify(res)
				}

				if err != nil {
					p.broadcastEvent(EventGeneratedPackage{Package: pkgPath, Err: err})

					errChan <- fmt.Errorf("generate %q: %w", pkgPath, err)

					return
				}

				p.broadcastEvent(EventGeneratedPackage{Package: pkgPath, Changed: res.Changed})

				pkgLogger.Info("finished generating package",
					slog.Bool("changed", res.Changed),
				)
			}()
		}

		// Drain the level before scheduling shallower packages: a
		// parent's analysis reads the __init__.py files written by its
		// subpackages' workers.
		err = sem.Acquire(ctx, workerCount)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWorkerFailed, err)
		}

		sem.Release(workerCount)
	}

	close(errChan)

	var merr error
	for err := range errChan {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return merr
	}

	logger.Info("generation complete")

	return nil
}
