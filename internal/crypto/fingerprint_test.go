package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kvstore/internal/crypto"
)

func TestFingerprint_Stable(t *testing.T) {
	a := crypto.Fingerprint([]byte("foo\tbar\n"))
	b := crypto.Fingerprint([]byte("foo\tbar\n"))
	assert.Equal(t, a, b)
	assert.Len(t, a.String(), 20)
}

func TestFingerprint_DiffersOnContent(t *testing.T) {
	a := crypto.Fingerprint([]byte("foo\tbar\n"))
	b := crypto.Fingerprint([]byte("foo\tbaz\n"))
	assert.NotEqual(t, a, b)
}

func TestFingerprint_Empty(t *testing.T) {
	// BLAKE2b-256 of the empty input.
	assert.Equal(t, "0e5751c026e543b2e8ab", crypto.Fingerprint(nil).String())
}
