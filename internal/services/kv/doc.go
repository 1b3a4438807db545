// Package kv binds the caller-facing key/value operations to the store.
//
// Each call opens the backing file, runs one operation and releases the
// store, so every call is a complete load/mutate/flush cycle. Absence, which
// the store reports as a plain boolean, becomes domain.ErrNotFound here so
// that command-line callers can exit non-zero.
package kv
