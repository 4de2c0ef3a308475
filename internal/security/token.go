package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const rawTokenBytes = 32

// NewRandomToken returns a high-entropy single-use token as hex. The raw
// value is transmitted exactly once and never persisted.
func NewRandomToken() (string, error) {
	buf := make([]byte, rawTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashToken derives the digest stored in place of a raw secret token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// HashRefreshToken peppers the digest so a leaked database dump alone
// cannot be used to forge lookup hashes.
func HashRefreshToken(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}
