package interfaces

import (
	"io"

	domaintypes "kvstore/internal/domain/types"
)

// KVStore is an in-memory key/value mapping bound to a backing file.
//
// Get and Remove report absence with ok=false; absence is not an error.
// Insert and Remove only change memory; Init and Flush write to disk.
type KVStore interface {
	Get(key string) (domaintypes.Entry, bool)
	Insert(key, value string, overwrite bool) error
	Remove(key string) (domaintypes.Entry, bool)
	Init() error
	Flush() error

	List() []domaintypes.Entry
	Len() int
	Load(r io.Reader, overwrite bool) (int, error)

	// Release performs the final flush; only the first call does anything.
	Release()
}
