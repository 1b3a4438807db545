package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvstore/internal/domain"
)

func TestRelease_FatalOnFlushFailure(t *testing.T) {
	var got []error
	s, err := Open(filepath.Join(t.TempDir(), "kv.db"), WithFatalHandler(func(err error) {
		got = append(got, err)
	}))
	require.NoError(t, err)
	require.NoError(t, s.Insert("k", "v", false))

	// Pull the handle out from under the store so the final flush fails.
	require.NoError(t, s.file.Close())

	s.Release()
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], domain.ErrIO)
	assert.Contains(t, got[0].Error(), "release")

	s.Release()
	assert.Len(t, got, 1, "fatal handler must run at most once")
}

func TestClose_ReturnsFlushFailure(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "kv.db"), WithFatalHandler(func(err error) {
		t.Fatalf("fatal handler called: %v", err)
	}))
	require.NoError(t, err)
	require.NoError(t, s.file.Close())

	err = s.Close()
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.True(t, s.released)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validate("", ""))
	assert.NoError(t, validate("key", "tab\tin value"))
	assert.ErrorIs(t, validate("k\t", "v"), domain.ErrUnencodable)
	assert.ErrorIs(t, validate("k", "v\n"), domain.ErrUnencodable)
	assert.ErrorIs(t, validate("k", "\xff"), domain.ErrUnencodable)
}
