package auth

import (
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost balances hashing time against brute-force resistance.
const DefaultBcryptCost = 12

// Hasher provides password hashing and verification. The stored form is the
// base64 encoding of a bcrypt hash, so the per-call salt travels inside the
// value and Verify needs no external salt storage.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the default cost.
func NewHasher() *Hasher {
	return &Hasher{cost: DefaultBcryptCost}
}

// Hash generates a salted hash of the given password.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Verify reports whether password matches the stored hash.
// A malformed stored value yields false, never an error.
func (h *Hasher) Verify(password, stored string) bool {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(raw, []byte(password)) == nil
}
