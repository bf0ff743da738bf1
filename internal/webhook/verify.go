package webhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"hash"
)

// Scheme is how a presented value is checked against a repository secret.
type Scheme int

const (
	// SchemeDirect compares the presented value with the secret itself.
	SchemeDirect Scheme = iota
	// SchemeHMACSHA1 expects the hex HMAC-SHA1 of the body keyed by the secret.
	SchemeHMACSHA1
	// SchemeHMACSHA256 expects the hex HMAC-SHA256 of the body keyed by the secret.
	SchemeHMACSHA256
)

func (s Scheme) String() string {
	switch s {
	case SchemeDirect:
		return "direct"
	case SchemeHMACSHA1:
		return "hmac-sha1"
	case SchemeHMACSHA256:
		return "hmac-sha256"
	}
	return "unknown"
}

// Verify reports whether presented proves knowledge of secret under scheme.
// All comparisons run in constant time.
func Verify(scheme Scheme, secret string, body []byte, presented string) bool {
	switch scheme {
	case SchemeDirect:
		return subtle.ConstantTimeCompare([]byte(secret), []byte(presented)) == 1
	case SchemeHMACSHA1:
		return verifyHMAC(sha1.New, secret, body, presented)
	case SchemeHMACSHA256:
		return verifyHMAC(sha256.New, secret, body, presented)
	}
	return false
}

// Signature returns the lowercase hex HMAC of body keyed by secret.
func Signature(h func() hash.Hash, secret string, body []byte) string {
	mac := hmac.New(h, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func verifyHMAC(h func() hash.Hash, secret string, body []byte, presented string) bool {
	if presented == "" {
		return false
	}
	expected := Signature(h, secret, body)
	return hmac.Equal([]byte(expected), []byte(presented))
}
