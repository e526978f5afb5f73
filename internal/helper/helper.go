package helper

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// EmailDigest identifies an email in logs and events without the address
// itself. Case and surrounding space do not change the digest.
func EmailDigest(email *string) string {
	if email == nil {
		return ""
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(e))
	return hex.EncodeToString(sum[:8])
}
