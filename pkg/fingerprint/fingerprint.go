// Package fingerprint computes the deterministic digests that identify
// submitted documents and biometric samples. A fingerprint is a hex-encoded
// SHA-256 digest; equal inputs always produce equal fingerprints, which is
// what the uniqueness index keys on.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Size is the length in hex characters of a fingerprint.
const Size = sha256.Size * 2

// HashText returns the fingerprint of the given identity text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// HashReader returns the fingerprint of the full content of r. The reader is
// consumed exactly once and rewound to its start afterwards, so the same
// upload can be re-read in full when it is transmitted to the pin service.
func HashReader(r io.ReadSeeker) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
