// Package initgen synthesizes the module-aggregation block of a Python
// package's __init__.py.
//
// Given a module name, discovered submodules, and (submodule, symbols)
// pairs, it renders either conventional inclusion statements plus an
// __all__ export manifest, or a deferred-resolution (lazy import)
// manifest with a PEP 562-style __getattr__ shim. Output is
// deterministic and wrapped at a fixed column width.
package initgen
