// Package syncs provides synchronization primitives.
//
// This package implements per-key locking used to serialize writes to
// individual generated files while letting independent files proceed
// concurrently.
package syncs
