// Package paths locates Python packages on disk.
//
// This package implements discovery of package directories (directories
// holding an __init__.py), resolution of the enclosing package root for
// a path, and repository root detection for recursive generation.
package paths
