// Package pysrc provides line-oriented scanning of Python source text.
//
// The main export is the primary-line scanner, which marks the physical
// lines that begin a new logical statement, as opposed to continuing a
// multi-line one (open brackets, triple-quoted strings, or a trailing
// backslash). Everything in this package is purely textual; no Python
// code is ever imported or executed.
package pysrc
