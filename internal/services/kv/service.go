package kv

import (
	"bytes"
	"fmt"
	"io"

	"kvstore/internal/crypto"
	"kvstore/internal/domain"
	"kvstore/internal/logger"
	"kvstore/internal/store"
)

// Service runs key/value operations against one backing file.
type Service struct {
	path string
	opts []store.Option
	log  *logger.Logger
}

// New returns a service over the store at path. The options are applied on
// every Open.
func New(path string, log *logger.Logger, opts ...store.Option) *Service {
	if log == nil {
		log = logger.Default()
	}
	opts = append([]store.Option{store.WithLogger(log)}, opts...)
	return &Service{path: path, opts: opts, log: log}
}

func (s *Service) session(fn func(*store.Store) error) error {
	return store.Session(s.path, fn, s.opts...)
}

func notFound(key string) error {
	return fmt.Errorf("%w '%s'", domain.ErrNotFound, key)
}

// Get returns the entry stored under key.
func (s *Service) Get(key string) (domain.Entry, error) {
	var out domain.Entry
	err := s.session(func(st *store.Store) error {
		e, ok := st.Get(key)
		if !ok {
			return notFound(key)
		}
		out = e
		return nil
	})
	return out, err
}

// Set stores value under key; an existing key is replaced only with force.
func (s *Service) Set(key, value string, force bool) error {
	return s.session(func(st *store.Store) error {
		if err := st.Insert(key, value, force); err != nil {
			return err
		}
		s.log.Infof("set %q in %s", key, s.path)
		return nil
	})
}

// Remove deletes key and returns what it held.
func (s *Service) Remove(key string) (domain.Entry, error) {
	var out domain.Entry
	err := s.session(func(st *store.Store) error {
		e, ok := st.Remove(key)
		if !ok {
			return notFound(key)
		}
		out = e
		s.log.Infof("removed %q from %s", key, s.path)
		return nil
	})
	return out, err
}

// Init empties the store on disk.
func (s *Service) Init() error {
	return s.session(func(st *store.Store) error {
		if err := st.Init(); err != nil {
			return err
		}
		s.log.Infof("initialized %s", s.path)
		return nil
	})
}

// List returns every entry sorted by key.
func (s *Service) List() ([]domain.Entry, error) {
	var out []domain.Entry
	err := s.session(func(st *store.Store) error {
		out = st.List()
		return nil
	})
	return out, err
}

// Import loads KEY<TAB>VALUE records from r. Records read before a failure
// are kept and persisted.
func (s *Service) Import(r io.Reader, force bool) (int, error) {
	var n int
	err := s.session(func(st *store.Store) error {
		var err error
		n, err = st.Load(r, force)
		if err != nil {
			s.log.Warnf("import into %s stopped after %d records: %v", s.path, n, err)
			return err
		}
		s.log.Infof("imported %d records into %s", n, s.path)
		return nil
	})
	return n, err
}

// Fingerprint digests the store's serialized contents.
func (s *Service) Fingerprint() (domain.Fingerprint, error) {
	var fp domain.Fingerprint
	err := s.session(func(st *store.Store) error {
		var buf bytes.Buffer
		if _, err := st.WriteTo(&buf); err != nil {
			return err
		}
		fp = crypto.Fingerprint(buf.Bytes())
		return nil
	})
	return fp, err
}

// Compile-time assertion that Service implements domain.KVService.
var _ domain.KVService = (*Service)(nil)
