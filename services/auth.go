package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// CheckDatabasePassword compares the submitted password against the
// configured secret in constant time.
func CheckDatabasePassword(input, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(input), []byte(secret)) == 1
}

// DatabaseAccessToken derives the cookie value that proves a client unlocked
// the reference database. A hash keeps the secret itself out of the cookie.
func DatabaseAccessToken(secret string) string {
	sum := sha256.Sum256([]byte("estimation-db:" + secret))
	return hex.EncodeToString(sum[:])
}
