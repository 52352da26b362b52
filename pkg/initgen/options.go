package initgen

import (
	"fmt"

	"github.com/pvandyken/mkinit/pkg/initerrors"
)

// Options configures declaration rendering. The zero value is not
// useful; construct with [NewOptions] or [ParseOptions].
type Options struct {
	// LazyBoilerplate overrides the built-in deferred-resolution shim
	// text. Empty selects the built-in shim.
	LazyBoilerplate string

	// WithAttrs exposes from-import symbols as top-level attributes.
	WithAttrs bool

	// WithMods exposes submodules as top-level attributes.
	WithMods bool

	// WithAll emits the __all__ export-manifest assignment.
	WithAll bool

	// Relative roots inclusion statements at the relative-module marker
	// instead of the absolute module name.
	Relative bool

	// LazyImport selects deferred-resolution rendering.
	LazyImport bool

	// UseBlack post-formats the output when a formatter is available.
	UseBlack bool
}

// NewOptions returns an Options with the default configuration.
func NewOptions() *Options {
	return &Options{
		WithAttrs:  true,
		WithMods:   true,
		WithAll:    true,
		Relative:   false,
		LazyImport: false,
		UseBlack:   false,
	}
}

// ParseOptions builds an Options from a key/value map, applying defaults
// for absent keys. Unrecognized keys and mistyped values are rejected
// with [initerrors.ErrBadOption] before any analysis or file I/O occurs.
func ParseOptions(given map[string]any) (*Options, error) {
	opts := NewOptions()

	for k, v := range given {
		switch k {
		case "with_attrs":
			if err := setBool(&opts.WithAttrs, k, v); err != nil {
				return nil, err
			}
		case "with_mods":
			if err := setBool(&opts.WithMods, k, v); err != nil {
				return nil, err
			}
		case "with_all":
			if err := setBool(&opts.WithAll, k, v); err != nil {
				return nil, err
			}
		case "relative":
			if err := setBool(&opts.Relative, k, v); err != nil {
				return nil, err
			}
		case "lazy_import":
			if err := setBool(&opts.LazyImport, k, v); err != nil {
				return nil, err
			}
		case "lazy_boilerplate":
			if v == nil {
				continue
			}

			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s: expected string, got %T", initerrors.ErrBadOption, k, v)
			}

			opts.LazyBoilerplate = s
		case "use_black":
			if err := setBool(&opts.UseBlack, k, v); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: unknown key %q", initerrors.ErrBadOption, k)
		}
	}

	return opts, nil
}

func setBool(dst *bool, key string, v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%w: %s: expected bool, got %T", initerrors.ErrBadOption, key, v)
	}

	*dst = b

	return nil
}
