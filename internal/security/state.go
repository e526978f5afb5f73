package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// StateSigner signs OAuth state values against CSRF.
type StateSigner struct {
	key []byte
}

func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{key: []byte(secret)}
}

func (s *StateSigner) Sign(raw string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(raw))
	return raw + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *StateSigner) Verify(got string) bool {
	i := strings.LastIndexByte(got, '.')
	if i <= 0 {
		return false
	}
	sig, err := base64.RawURLEncoding.DecodeString(got[i+1:])
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(got[:i]))
	return hmac.Equal(mac.Sum(nil), sig)
}
