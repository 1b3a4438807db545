// Package store implements the embedded key/value engine: a map held in
// memory and persisted to a flat, line-delimited text file.
//
// # File format
//
// One record per line, KEY<TAB>VALUE, each terminated by a newline. A record
// splits on its first tab; a line without one is corrupt. Nothing is escaped,
// so Insert refuses keys containing tabs or line breaks and values containing
// line breaks.
//
// # Lifecycle
//
// Open loads the whole file. Insert and Remove only touch memory; Init and
// Flush rewrite the file. Release performs the final flush exactly once and
// treats a failure there as fatal:
//
//	s, err := store.Open("kv.db")
//	if err != nil {
//		return err
//	}
//	defer s.Release()
//
// Session wraps the same pattern around a function.
package store
