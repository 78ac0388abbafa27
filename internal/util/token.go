package util

import (
	"crypto/rand"
	"encoding/hex"
)

const resetTokenBytes = 20

// NewResetToken returns a 160-bit random secret, hex encoded. The entropy
// makes the token unguessable; possession of the string is the whole proof.
func NewResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
