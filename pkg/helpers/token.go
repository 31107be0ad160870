package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateToken returns a URL-safe random token of n bytes of entropy.
// Used for password reset and email verification secrets.
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
