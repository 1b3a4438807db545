package input_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvstore/internal/input"
)

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a\t1\n"), 0o644))

	rc, err := input.Open(path)
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "a\t1\n", string(b))
}

func TestOpen_Missing(t *testing.T) {
	_, err := input.Open(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_Stdin(t *testing.T) {
	for _, name := range []string{"", input.Stdin} {
		rc, err := input.Open(name)
		require.NoError(t, err)
		assert.NoError(t, rc.Close())
	}
}
