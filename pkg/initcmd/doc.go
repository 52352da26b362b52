// Package initcmd orchestrates __init__.py generation for one or many
// Python packages.
//
// This package ties together static analysis, statement synthesis, and
// boundary-aware splicing. It supports single-package and recursive
// generation, a check mode that reports stale files without writing,
// and event broadcasting for progress reporting in the TUI.
package initcmd
