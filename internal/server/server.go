package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"kvstore/internal/domain"
	"kvstore/internal/logger"
)

// maxValueSize bounds PUT bodies.
const maxValueSize = 1 << 20

// Server serves one store over HTTP.
type Server struct {
	mu     sync.Mutex
	store  domain.KVStore
	closed bool
	log    *logger.Logger
	http   *http.Server
}

// New returns a server for st listening on addr once started.
func New(addr string, st domain.KVStore, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	s := &Server{store: st, log: log}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/kv", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/kv/{key}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/kv/{key}", s.handlePut).Methods(http.MethodPut)
	r.HandleFunc("/kv/{key}", s.handleDelete).Methods(http.MethodDelete)
	r.HandleFunc("/init", s.handleInit).Methods(http.MethodPost)
	r.HandleFunc("/flush", s.handleFlush).Methods(http.MethodPost)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	}).Methods(http.MethodGet)
	return r
}

// ListenAndServe blocks until the server stops. A stop caused by Shutdown is
// not an error.
func (s *Server) ListenAndServe() error {
	s.log.Infof("listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Release takes the store away from the handlers and releases it. Requests
// still running, or arriving later, get 503.
func (s *Server) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.store.Release()
}

// Run serves until ctx is done, shuts down within timeout and releases the
// store on every path, including a listener that fails to start.
func (s *Server) Run(ctx context.Context, timeout time.Duration) error {
	defer s.Release()

	errc := make(chan error, 1)
	go func() { errc <- s.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Infof("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("server forced to shutdown: %v", err)
	}
	return <-errc
}

// locked runs fn with exclusive access to the store. Once the store has been
// released it answers 503 instead and returns false.
func (s *Server) locked(w http.ResponseWriter, fn func(st domain.KVStore)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return false
	}
	fn(s.store)
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnencodable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	http.Error(w, err.Error(), code)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var entries []domain.Entry
	if !s.locked(w, func(st domain.KVStore) { entries = st.List() }) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var e domain.Entry
	var ok bool
	if !s.locked(w, func(st domain.KVStore) { e, ok = st.Get(key) }) {
		return
	}

	if !ok {
		s.fail(w, r, fmt.Errorf("%w '%s'", domain.ErrNotFound, key))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, e.Value)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	force := false
	if v := r.URL.Query().Get("force"); v != "" {
		var err error
		if force, err = strconv.ParseBool(v); err != nil {
			http.Error(w, "invalid force parameter", http.StatusBadRequest)
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxValueSize+1))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(body) > maxValueSize {
		http.Error(w, "value too large", http.StatusRequestEntityTooLarge)
		return
	}

	if !s.locked(w, func(st domain.KVStore) { err = st.Insert(key, string(body), force) }) {
		return
	}

	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Debugf("PUT key=%s", key)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var e domain.Entry
	var ok bool
	if !s.locked(w, func(st domain.KVStore) { e, ok = st.Remove(key) }) {
		return
	}

	if !ok {
		s.fail(w, r, fmt.Errorf("%w '%s'", domain.ErrNotFound, key))
		return
	}
	s.log.Debugf("DELETE key=%s", key)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, e.Value)
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var err error
	if !s.locked(w, func(st domain.KVStore) { err = st.Init() }) {
		return
	}

	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFlush(w http.ResponseWriter, r *http.Request) {
	var err error
	if !s.locked(w, func(st domain.KVStore) { err = st.Flush() }) {
		return
	}

	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
