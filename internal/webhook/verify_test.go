package webhook

import (
	"crypto/sha1"
	"crypto/sha256"
	"strings"
	"testing"
)

func flip(hex string) string {
	b := []byte(hex)
	if b[0] == '0' {
		b[0] = '1'
	} else {
		b[0] = '0'
	}
	return string(b)
}

func TestVerify(t *testing.T) {
	body := []byte(`{"ref":"refs/heads/main"}`)
	sig1 := Signature(sha1.New, "s3cret", body)
	sig256 := Signature(sha256.New, "s3cret", body)

	tests := []struct {
		name      string
		scheme    Scheme
		secret    string
		presented string
		want      bool
	}{
		{"direct equal", SchemeDirect, "s3cret", "s3cret", true},
		{"direct different", SchemeDirect, "s3cret", "s3cre", false},
		{"direct both empty", SchemeDirect, "", "", true},
		{"direct empty presented", SchemeDirect, "s3cret", "", false},
		{"sha1 valid", SchemeHMACSHA1, "s3cret", sig1, true},
		{"sha1 one char flipped", SchemeHMACSHA1, "s3cret", flip(sig1), false},
		{"sha1 wrong secret", SchemeHMACSHA1, "other", sig1, false},
		{"sha1 uppercase", SchemeHMACSHA1, "s3cret", strings.ToUpper(sig1), false},
		{"sha1 empty presented", SchemeHMACSHA1, "", "", false},
		{"sha256 valid", SchemeHMACSHA256, "s3cret", sig256, true},
		{"sha256 given sha1", SchemeHMACSHA256, "s3cret", sig1, false},
		{"unknown scheme", Scheme(42), "s3cret", "s3cret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verify(tt.scheme, tt.secret, body, tt.presented); got != tt.want {
				t.Errorf("Verify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignatureKnownDigest(t *testing.T) {
	// echo -n 'hello' | openssl dgst -sha1 -hmac key
	if got := Signature(sha1.New, "key", []byte("hello")); got != "b34ceac4516ff23a143e61d79d0fa7a4fbe5f266" {
		t.Errorf("Signature = %s", got)
	}
}
