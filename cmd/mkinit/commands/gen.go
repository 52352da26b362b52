package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pvandyken/mkinit/pkg/initcmd"
	"github.com/pvandyken/mkinit/pkg/initerrors"
	"github.com/pvandyken/mkinit/pkg/initgen"
	"github.com/pvandyken/mkinit/pkg/inittui"
	"github.com/pvandyken/mkinit/pkg/paths"
)

const (
	genDesc = `This command regenerates __init__.py declarations
`
	genExample = `  mkinit gen [path] [flags]
  # Preview generated declarations for the package in the current directory
  mkinit gen

  # Write generated declarations for a package
  mkinit gen src/mypkg --write

  # Regenerate every package under a directory
  mkinit gen src --recursive --write

  # Generate deferred-resolution declarations
  mkinit gen src/mypkg --lazy --write
`
)

var (
	ErrArgument        = errors.New("argument error")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrGenFailed       = errors.New("gen command failed")
	ErrCheckFailed     = errors.New("check command failed")
)

// NewGenCmd returns the gen command.
func NewGenCmd(arg *RootArgs) *cobra.Command {
	args := NewGenArgs(arg)

	cmd := &cobra.Command{
		Use:          "gen [path]",
		Short:        "Generate __init__.py declarations",
		Long:         genDesc,
		Example:      genExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			// Without --write or --diff the generated files are
			// printed to stdout instead.
			preview := !args.GetWrite() && !args.GetDiff()

			pkg, err := newGenPackage(cmd, args, posArgs, args.GetWrite(), preview)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrGenFailed, err)
			}

			cc, err := newGenCommander(cmd.OutOrStdout(), args, pkg, preview)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrGenFailed, err)
			}

			if err := cc.Update(); err != nil {
				return fmt.Errorf("%w: %w", ErrGenFailed, err)
			}

			return nil
		},
	}

	addGenFlags(cmd, args)
	cmd.Flags().BoolVarP(args.write, "write", "w", false, "Write changes to disk instead of previewing")
	cmd.Flags().BoolVar(args.diff, "diff", false, "Print a diff for every package that would change")

	return cmd
}

// NewCheckCmd returns the check command.
func NewCheckCmd(arg *RootArgs) *cobra.Command {
	args := NewGenArgs(arg)

	cmd := &cobra.Command{
		Use:          "check [path]",
		Short:        "Verify that generated declarations are up to date",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			pkg, err := newGenPackage(cmd, args, posArgs, false, false)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrCheckFailed, err)
			}

			cc, err := newGenCommander(cmd.OutOrStdout(), args, pkg, false)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrCheckFailed, err)
			}

			if err := cc.Check(); err != nil {
				return fmt.Errorf("%w: %w", ErrCheckFailed, err)
			}

			return nil
		},
	}

	addGenFlags(cmd, args)
	cmd.Flags().BoolVar(args.diff, "diff", false, "Print a diff for every stale package")

	return cmd
}

func addGenFlags(cmd *cobra.Command, args *GenArgs) {
	cmd.Flags().BoolVarP(args.recursive, "recursive", "r", false, "Generate for every package under the path")
	cmd.Flags().BoolVar(args.lazy, "lazy", false, "Generate deferred-resolution declarations")
	cmd.Flags().StringVar(args.lazyBoilerplate, "lazy_boilerplate", "",
		"Custom boilerplate for deferred resolution (implies --lazy)")
	cmd.Flags().BoolVar(args.relative, "relative", false, "Use relative inclusion statements")
	cmd.Flags().BoolVar(args.black, "black", false, "Post-format output with black")
	cmd.Flags().BoolVar(args.noattrs, "noattrs", false, "Omit attribute inclusion statements")
	cmd.Flags().BoolVar(args.nomods, "nomods", false, "Omit submodule inclusion statements")
	cmd.Flags().BoolVar(args.noall, "noall", false, "Omit the __all__ manifest")
	cmd.Flags().BoolVarP(args.quiet, "quiet", "q", false, "Run in quiet mode")
	cmd.Flags().DurationVar(args.timeout, "timeout", 5*time.Minute, "Timeout for the command")
}

func newGenPackage(cmd *cobra.Command, args *GenArgs, posArgs []string, write, preview bool) (*initcmd.PyPackage, error) {
	path := "."
	if len(posArgs) > 0 {
		path = posArgs[0]
	}

	var merr error

	if fi, err := os.Stat(path); err != nil || !fi.IsDir() {
		merr = multierror.Append(merr, fmt.Errorf("%w: %q is not a directory", initerrors.ErrNotAPackage, path))
	}

	if args.GetLazyBoilerplate() != "" && cmd.Flags().Changed("lazy") && !args.GetLazy() {
		merr = multierror.Append(merr, fmt.Errorf("%w: lazy_boilerplate conflicts with --lazy=false", ErrInvalidArgument))
	}

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", ErrArgument, merr)
	}

	opts, err := buildOptions(cmd, args, path)
	if err != nil {
		return nil, err
	}

	pkgOpts := []initcmd.PyPackageOpt{
		initcmd.WithOptions(opts),
		initcmd.WithWrite(write),
		initcmd.WithRecursive(args.GetRecursive()),
		initcmd.WithTimeout(args.GetTimeout()),
	}
	if args.GetDiff() {
		pkgOpts = append(pkgOpts, initcmd.WithDiffWriter(cmd.OutOrStdout()))
	}

	if preview {
		pkgOpts = append(pkgOpts, initcmd.WithPreviewWriter(cmd.OutOrStdout()))
	}

	return initcmd.NewPyPackage(path, pkgOpts...)
}

// buildOptions layers generation options: defaults, then the repository
// config file, then explicitly set flags.
func buildOptions(cmd *cobra.Command, args *GenArgs, path string) (*initgen.Options, error) {
	opts := initgen.NewOptions()

	repoRoot, err := paths.FindRepoRoot(path)
	if err != nil {
		repoRoot = path
	}

	cfg, err := initcmd.LoadConfig(path, repoRoot)
	if err != nil {
		return nil, err
	}

	cfg.Apply(opts)

	flags := cmd.Flags()

	if flags.Changed("lazy") {
		opts.LazyImport = args.GetLazy()
	}

	if flags.Changed("lazy_boilerplate") {
		opts.LazyBoilerplate = args.GetLazyBoilerplate()
		opts.LazyImport = true
	}

	if flags.Changed("relative") {
		opts.Relative = args.GetRelative()
	}

	if flags.Changed("black") {
		opts.UseBlack = args.GetBlack()
	}

	if flags.Changed("noattrs") {
		opts.WithAttrs = !args.GetNoAttrs()
	}

	if flags.Changed("nomods") {
		opts.WithMods = !args.GetNoMods()
	}

	if flags.Changed("noall") {
		opts.WithAll = !args.GetNoAll()
	}

	return opts, nil
}

type genCommander interface {
	Update() error
	Check() error
	Subscribe(f func(any))
}

//nolint:ireturn // Multiple concrete types.
func newGenCommander(w io.Writer, args *GenArgs, pkg *initcmd.PyPackage, preview bool) (genCommander, error) {
	if args.GetQuiet() || args.GetDiff() || preview || !isatty.IsTerminal(os.Stdout.Fd()) {
		return pkg, nil
	}

	return inittui.NewGenTUI(w, args.GetLogLevel(), pkg)
}

type GenArgs struct {
	timeout         *time.Duration
	lazyBoilerplate *string
	quiet           *bool
	recursive       *bool
	write           *bool
	diff            *bool
	lazy            *bool
	relative        *bool
	black           *bool
	noattrs         *bool
	nomods          *bool
	noall           *bool
	*RootArgs
}

func NewGenArgs(args *RootArgs) *GenArgs {
	return &GenArgs{
		timeout:         new(time.Duration),
		lazyBoilerplate: new(string),
		quiet:           new(bool),
		recursive:       new(bool),
		write:           new(bool),
		diff:            new(bool),
		lazy:            new(bool),
		relative:        new(bool),
		black:           new(bool),
		noattrs:         new(bool),
		nomods:          new(bool),
		noall:           new(bool),
		RootArgs:        args,
	}
}

func (a *GenArgs) GetTimeout() time.Duration {
	return *a.timeout
}

func (a *GenArgs) GetLazyBoilerplate() string {
	return *a.lazyBoilerplate
}

func (a *GenArgs) GetQuiet() bool {
	return *a.quiet
}

func (a *GenArgs) GetRecursive() bool {
	return *a.recursive
}

func (a *GenArgs) GetWrite() bool {
	return *a.write
}

func (a *GenArgs) GetDiff() bool {
	return *a.diff
}

func (a *GenArgs) GetLazy() bool {
	return *a.lazy
}

func (a *GenArgs) GetRelative() bool {
	return *a.relative
}

func (a *GenArgs) GetBlack() bool {
	return *a.black
}

func (a *GenArgs) GetNoAttrs() bool {
	return *a.noattrs
}

func (a *GenArgs) GetNoMods() bool {
	return *a.nomods
}

func (a *GenArgs) GetNoAll() bool {
	return *a.noall
}
