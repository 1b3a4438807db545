package store

import (
	"fmt"

	"kvstore/internal/domain"
)

// Close performs the final flush and closes the backing file, returning any
// failure. Only the first call to Close or Release does anything.
func (s *Store) Close() error {
	if s.released {
		return nil
	}
	s.released = true

	flushErr := s.flush()
	closeErr := s.file.Close()
	if flushErr != nil {
		return fmt.Errorf("release %s: %w", s.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("release %s: %w: %w", s.path, domain.ErrIO, closeErr)
	}
	s.log.Debugf("released %s", s.path)
	return nil
}

// Release ends the store's life: it flushes once and closes the file.
// A failure cannot be returned to anyone, so it goes to the fatal handler,
// which by default terminates the process. Meant to be deferred right after
// a successful Open.
func (s *Store) Release() {
	if err := s.Close(); err != nil {
		s.fatal(err)
	}
}

// Session opens the store at path, runs fn and releases the store on every
// exit path, including a panic in fn.
func Session(path string, fn func(*Store) error, opts ...Option) error {
	s, err := Open(path, opts...)
	if err != nil {
		return err
	}
	defer s.Release()
	return fn(s)
}
