package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"kvstore/internal/domain"
)

// fingerprintLen is the number of digest bytes kept for display.
const fingerprintLen = 10

// Fingerprint returns a short hex digest of a store's serialized contents.
//
// It hashes with BLAKE2b-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(serialized []byte) domain.Fingerprint {
	sum := blake2b.Sum256(serialized)
	return domain.Fingerprint(hex.EncodeToString(sum[:fingerprintLen]))
}
