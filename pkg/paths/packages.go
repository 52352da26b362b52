package paths

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindPackages walks root and returns every Python package directory
// beneath it, in lexical order. Hidden directories, __pycache__, and
// common virtualenv directories are not descended into. Nested packages
// are included; recursive generation visits each one.
func FindPackages(root string) ([]string, error) {
	pkgs := []string{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		name := d.Name()
		if path != root && skipDir(name) {
			return filepath.SkipDir
		}

		if _, err := os.Stat(filepath.Join(path, "__init__.py")); err == nil {
			pkgs = append(pkgs, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return pkgs, nil
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	switch name {
	case "__pycache__", "node_modules", "venv", "build", "dist":
		return true
	}

	return false
}
