package initcmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pvandyken/mkinit/pkg/initerrors"
	"github.com/pvandyken/mkinit/pkg/initgen"
)

// ConfigFileName is looked up in the target directory and then in the
// repository root.
const ConfigFileName = ".mkinit.yaml"

// Config holds per-repository generation defaults. Flags override any
// value set here. Pointer fields distinguish "unset" from an explicit
// false.
type Config struct {
	Attrs           *bool  `yaml:"attrs"`
	Mods            *bool  `yaml:"mods"`
	All             *bool  `yaml:"all"`
	LazyBoilerplate string `yaml:"lazy_boilerplate"`
	Lazy            bool   `yaml:"lazy"`
	Relative        bool   `yaml:"relative"`
	Black           bool   `yaml:"black"`
}

// LoadConfig reads the config file from dir, falling back to repoRoot.
// A missing file in both locations yields a nil Config and no error.
// Unknown keys are rejected.
func LoadConfig(dir, repoRoot string) (*Config, error) {
	for _, d := range []string{dir, repoRoot} {
		path := filepath.Join(d, ConfigFileName)

		f, err := os.Open(path)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", initerrors.ErrReadFile, path, err)
		}

		defer f.Close() //nolint:errcheck // Read-only file.

		cfg, err := decodeConfig(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return cfg, nil
	}

	return nil, nil //nolint:nilnil // Absent config is not an error.
}

func decodeConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := &Config{}

	err := dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		// Empty config file.
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: %w", initerrors.ErrInvalidFormat, err)
	}

	return cfg, nil
}

// Apply copies the configured defaults onto o.
func (c *Config) Apply(o *initgen.Options) {
	if c == nil {
		return
	}

	if c.Attrs != nil {
		o.WithAttrs = *c.Attrs
	}

	if c.Mods != nil {
		o.WithMods = *c.Mods
	}

	if c.All != nil {
		o.WithAll = *c.All
	}

	o.LazyImport = c.Lazy
	o.LazyBoilerplate = c.LazyBoilerplate
	o.Relative = c.Relative
	o.UseBlack = c.Black
}
