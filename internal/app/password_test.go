package app_test

import (
	"encoding/base64"
	"testing"

	"hotel_desk/internal/app"
)

func TestBcryptHasher(t *testing.T) {
	h := app.BcryptHasher{Cost: 4}
	d1, err := h.Hash("123456")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	d2, _ := h.Hash("123456")
	if d1 == d2 {
		t.Fatalf("bcrypt digests must be salted (got identical digests)")
	}
	if !h.Verify(d1, "123456") {
		t.Fatalf("verify rejected correct password")
	}
	if h.Verify(d1, "12345") {
		t.Fatalf("verify accepted wrong password")
	}
}

func TestLegacyHasher_MatchesHistoricalEncoding(t *testing.T) {
	h := app.LegacyHasher{}
	d, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if d != base64.StdEncoding.EncodeToString([]byte("secret")) {
		t.Fatalf("legacy digest diverged from the stored format: %q", d)
	}
	if !h.Verify(d, "secret") || h.Verify(d, "other") {
		t.Fatalf("legacy verify broken")
	}
}
