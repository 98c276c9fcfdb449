package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewActivationToken returns 32 lowercase hex characters from 16 random bytes.
func NewActivationToken() (string, error) {
	return randomHex(16)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
