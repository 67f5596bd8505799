package app

import (
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher is the default digest scheme: salted, slow, one-way.
type BcryptHasher struct{ Cost int }

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h BcryptHasher) Verify(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// LegacyHasher reproduces the historical base64 transform. It is reversible
// and unsalted — not a hash in any cryptographic sense. It exists only so
// user lists written by old deployments stay readable; new deployments
// should keep the bcrypt default.
type LegacyHasher struct{}

func (LegacyHasher) Hash(password string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(password)), nil
}

func (LegacyHasher) Verify(digest, password string) bool {
	enc := base64.StdEncoding.EncodeToString([]byte(password))
	return subtle.ConstantTimeCompare([]byte(digest), []byte(enc)) == 1
}
