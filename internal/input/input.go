// Package input opens the sources line-oriented commands read from.
package input

import (
	"io"
	"os"
)

// Stdin names standard input.
const Stdin = "-"

// Open returns a reader for name. "-" and "" mean standard input, whose
// Close is a no-op; anything else is opened as a file.
func Open(name string) (io.ReadCloser, error) {
	if name == "" || name == Stdin {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}
