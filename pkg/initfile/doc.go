// Package initfile locates the region of an existing __init__.py that
// generated content may occupy, and splices replacement text into it.
//
// The locator recognizes two layers of markers. Explicit sentinel
// comments (# <AUTOGEN_INIT> ... # </AUTOGEN_INIT>) bound a region owned
// entirely by the generator and always win once seen. In their absence, a
// fixed set of implicit line prefixes (future imports, version strings,
// visibility lists, comments, docstring delimiters) mark content that
// must be preserved; everything after the last such prefix is clobbered.
// Implicit matches respect multi-line statements: the preserved region
// extends to the next primary line, never severing a statement
// mid-expression.
package initfile
