// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	lowerAlphanumeric = "abcdefghijklmnopqrstuvwxyz0123456789"
	// upperAlphanumeric skips 0, O, 1 and I so references read back unambiguously.
	upperAlphanumeric = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

func randomFrom(charset string, length int) (string, error) {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}
	return string(b), nil
}

func GenerateRandomString(length int) (string, error) {
	return randomFrom(lowerAlphanumeric, length)
}

// GenerateReferenceCode returns an upper-case code for payment order numbers.
func GenerateReferenceCode(length int) (string, error) {
	return randomFrom(upperAlphanumeric, length)
}
