package domain

import "errors"

var (
	// ErrIO wraps open, read and write failures on a backing file.
	ErrIO = errors.New("i/o error")

	// ErrAlreadyExists is returned by Insert when the key is present and overwrite is off.
	ErrAlreadyExists = errors.New("already exists in database")

	// ErrNotFound is returned by services when a key is absent.
	ErrNotFound = errors.New("no entry found for key")

	// ErrCorruptData is returned when a backing file holds a malformed record.
	ErrCorruptData = errors.New("corrupt data")

	// ErrUnencodable is returned for keys or values the line format cannot hold.
	ErrUnencodable = errors.New("cannot be stored in the line format")

	// ErrReleased is returned by operations on a store that was already released.
	ErrReleased = errors.New("store already released")
)
