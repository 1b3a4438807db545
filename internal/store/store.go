package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"kvstore/internal/domain"
	"kvstore/internal/logger"
)

// Store is an in-memory key/value mapping bound to a backing file.
//
// A Store is not safe for concurrent use. It holds the backing file open from
// Open until Release; two stores over the same path race and the last flush
// wins. A released store still answers Get, and Remove only changes memory;
// Insert, Init, Flush and Load return domain.ErrReleased.
type Store struct {
	path    string
	file    *os.File
	entries map[string]string

	sync  bool
	fatal func(error)
	log   *logger.Logger

	released bool
}

// Option configures a Store at Open time.
type Option func(*Store)

// WithSync makes every flush fsync the backing file.
func WithSync(sync bool) Option {
	return func(s *Store) { s.sync = sync }
}

// WithFatalHandler replaces what Release does when its final flush fails.
// The default logs at FATAL and exits the process.
func WithFatalHandler(fn func(error)) Option {
	return func(s *Store) { s.fatal = fn }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open loads the store at path, creating an empty file if none exists.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	if s.fatal == nil {
		s.fatal = func(err error) {
			s.log.Fatalf("error writing to database file: %v", err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}

	lr := newLineReader(bytes.NewReader(content), path)
	for {
		key, value, err := lr.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		s.entries[key] = value
	}

	s.file = f
	s.log.Debugf("loaded %d entries from %s", len(s.entries), path)
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Len returns the number of entries in memory.
func (s *Store) Len() int { return len(s.entries) }

// Get returns the entry for key and whether it exists.
func (s *Store) Get(key string) (domain.Entry, bool) {
	v, ok := s.entries[key]
	if !ok {
		return domain.Entry{}, false
	}
	return domain.Entry{Key: key, Value: v}, true
}

// Insert sets key to value. If key already exists and overwrite is false it
// returns domain.ErrAlreadyExists and leaves the store unchanged.
// Nothing is written to disk until the next flush.
func (s *Store) Insert(key, value string, overwrite bool) error {
	if s.released {
		return domain.ErrReleased
	}
	if _, ok := s.entries[key]; ok && !overwrite {
		return fmt.Errorf("%s %w", key, domain.ErrAlreadyExists)
	}
	if err := validate(key, value); err != nil {
		return err
	}
	s.entries[key] = value
	return nil
}

// Remove deletes key and returns the removed entry, if any.
func (s *Store) Remove(key string) (domain.Entry, bool) {
	v, ok := s.entries[key]
	if !ok {
		return domain.Entry{}, false
	}
	delete(s.entries, key)
	return domain.Entry{Key: key, Value: v}, true
}

// Init empties the store and flushes immediately.
func (s *Store) Init() error {
	if s.released {
		return domain.ErrReleased
	}
	clear(s.entries)
	return s.flush()
}

// List returns all entries sorted by key.
func (s *Store) List() []domain.Entry {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]domain.Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.Entry{Key: k, Value: s.entries[k]})
	}
	return out
}

// Load decodes records from r and inserts each with the given conflict
// policy. It returns the number of records inserted before the first error.
func (s *Store) Load(r io.Reader, overwrite bool) (int, error) {
	if s.released {
		return 0, domain.ErrReleased
	}
	name := "input"
	if named, ok := r.(interface{ Name() string }); ok {
		name = named.Name()
	}

	lr := newLineReader(r, name)
	n := 0
	for {
		key, value, err := lr.next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := s.Insert(key, value, overwrite); err != nil {
			return n, err
		}
		n++
	}
}

// WriteTo writes the on-disk serialization of the store to w.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	return writeRecords(w, s.List())
}

// Flush overwrites the backing file with the current entries.
// A failed flush may leave the file truncated.
func (s *Store) Flush() error {
	if s.released {
		return domain.ErrReleased
	}
	return s.flush()
}

func (s *Store) flush() error {
	if err := s.file.Truncate(0); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	if _, err := s.WriteTo(s.file); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	if s.sync {
		if err := s.file.Sync(); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrIO, err)
		}
	}
	s.log.Debugf("flushed %d entries to %s", len(s.entries), s.path)
	return nil
}

// Compile-time assertion that Store implements domain.KVStore.
var _ domain.KVStore = (*Store)(nil)
