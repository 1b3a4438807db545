package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvstore/internal/domain"
	"kvstore/internal/logger"
	"kvstore/internal/server"
	"kvstore/internal/store"
)

type fixture struct {
	ts    *httptest.Server
	srv   *server.Server
	store *store.Store
	path  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kv.db")
	log := logger.New(logger.Options{Console: &bytes.Buffer{}})

	st, err := store.Open(path, store.WithLogger(log), store.WithFatalHandler(func(err error) {
		t.Errorf("release failed: %v", err)
	}))
	require.NoError(t, err)

	srv := server.New("127.0.0.1:0", st, log)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		st.Release()
	})
	return &fixture{ts: ts, srv: srv, store: st, path: path}
}

func (f *fixture) do(t *testing.T, method, path, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, f.ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := f.ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestPutGetDelete(t *testing.T) {
	f := newFixture(t)

	code, _ := f.do(t, http.MethodPut, "/kv/foo", "bar")
	assert.Equal(t, http.StatusNoContent, code)

	code, body := f.do(t, http.MethodGet, "/kv/foo", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "bar", body)

	code, body = f.do(t, http.MethodDelete, "/kv/foo", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "bar", body)

	code, _ = f.do(t, http.MethodGet, "/kv/foo", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = f.do(t, http.MethodDelete, "/kv/foo", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPut_Conflict(t *testing.T) {
	f := newFixture(t)

	code, _ := f.do(t, http.MethodPut, "/kv/foo", "bar")
	require.Equal(t, http.StatusNoContent, code)

	code, body := f.do(t, http.MethodPut, "/kv/foo", "baz")
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, body, "already exists")

	code, _ = f.do(t, http.MethodPut, "/kv/foo?force=true", "baz")
	assert.Equal(t, http.StatusNoContent, code)
	_, body = f.do(t, http.MethodGet, "/kv/foo", "")
	assert.Equal(t, "baz", body)

	code, _ = f.do(t, http.MethodPut, "/kv/foo?force=maybe", "qux")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPut_Unencodable(t *testing.T) {
	f := newFixture(t)

	code, _ := f.do(t, http.MethodPut, "/kv/foo", "two\nlines")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPut, "/kv/b", "2")
	f.do(t, http.MethodPut, "/kv/a", "1")

	code, body := f.do(t, http.MethodGet, "/kv", "")
	require.Equal(t, http.StatusOK, code)

	var got []domain.Entry
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, []domain.Entry{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, got)
}

func TestFlushAndInit(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPut, "/kv/foo", "bar")

	code, _ := f.do(t, http.MethodPost, "/flush", "")
	require.Equal(t, http.StatusNoContent, code)
	b, err := os.ReadFile(f.path)
	require.NoError(t, err)
	assert.Equal(t, "foo\tbar\n", string(b))

	code, _ = f.do(t, http.MethodPost, "/init", "")
	require.Equal(t, http.StatusNoContent, code)
	b, err = os.ReadFile(f.path)
	require.NoError(t, err)
	assert.Empty(t, b)
	assert.Equal(t, 0, f.store.Len())
}

func TestFlush_AfterRelease(t *testing.T) {
	f := newFixture(t)
	f.store.Release()

	code, body := f.do(t, http.MethodPost, "/flush", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body, domain.ErrReleased.Error())
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	code, body := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)
}

func TestPut_BinaryBody(t *testing.T) {
	f := newFixture(t)

	code, _ := f.do(t, http.MethodPut, "/kv/bin", "\xff\xfe")
	assert.Equal(t, http.StatusBadRequest, code)

	_, ok := f.store.Get("bin")
	assert.False(t, ok)
}

func TestRelease_RejectsLaterRequests(t *testing.T) {
	f := newFixture(t)

	code, _ := f.do(t, http.MethodPut, "/kv/foo", "bar")
	require.Equal(t, http.StatusNoContent, code)

	f.srv.Release()
	f.srv.Release()

	data, err := os.ReadFile(f.path)
	require.NoError(t, err)
	assert.Equal(t, "foo\tbar\n", string(data))

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/kv", ""},
		{http.MethodGet, "/kv/foo", ""},
		{http.MethodPut, "/kv/baz", "qux"},
		{http.MethodDelete, "/kv/foo", ""},
		{http.MethodPost, "/init", ""},
		{http.MethodPost, "/flush", ""},
	} {
		code, _ := f.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusServiceUnavailable, code, "%s %s", tc.method, tc.path)
	}

	_, ok := f.store.Get("foo")
	assert.True(t, ok, "requests after release must not reach the store")
}

func TestRun_ReleasesStoreOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	log := logger.New(logger.Options{Console: &bytes.Buffer{}})
	var fatal error
	st, err := store.Open(path, store.WithLogger(log), store.WithFatalHandler(func(err error) {
		fatal = err
	}))
	require.NoError(t, err)
	require.NoError(t, st.Insert("foo", "bar", false))

	srv := server.New("127.0.0.1:0", st, log)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, srv.Run(ctx, time.Second))
	require.NoError(t, fatal)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "foo\tbar\n", string(data))
	assert.ErrorIs(t, st.Flush(), domain.ErrReleased)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	resp, err := ts.Client().Get(ts.URL + "/kv/foo")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
