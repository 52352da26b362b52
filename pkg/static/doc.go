// Package static discovers the submodules and importable symbols of a
// Python package by purely textual analysis.
//
// Discovery never imports or executes analyzed code. Submodules come
// from the filesystem (modules and subpackages); symbols come from
// scanning top-level definitions, honoring a submodule's own __all__
// declaration when present. Control variables in an existing
// __init__.py (__submodules__, __external__, __private__,
// __protected__) steer what is generated.
package static
