// Package initerrors provides error definitions shared across init
// generation operations.
//
// This package defines standardized error types to ensure consistent
// error reporting and wrapping throughout the codebase.
package initerrors
