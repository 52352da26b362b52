// Package pyfmt provides optional post-formatting of rendered Python
// source.
//
// The formatter is modeled as a capability: present (black found on
// PATH) or absent. Absence is never fatal; callers fall back to the
// unformatted rendering.
package pyfmt
