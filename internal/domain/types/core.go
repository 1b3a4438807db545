package types

import "fmt"

// Entry is a single key/value record held by a store.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// String renders the entry the way the CLI prints it.
func (e Entry) String() string { return fmt.Sprintf("%s : %s", e.Key, e.Value) }

// Fingerprint is a short digest of a store's contents presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }
