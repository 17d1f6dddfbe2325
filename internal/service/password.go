package service

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher performs one-way hashing and verification of account
// passwords. Production accounts use cost 12; seed tooling may hash at a
// lower cost. The cost is embedded in each digest, so verification works
// regardless of the cost a digest was created with.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the given bcrypt cost.
func NewPasswordHasher(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash computes a salted bcrypt digest of the password. Each call produces a
// distinct digest for the same input.
func (h *PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(digest), err
}

// Verify compares a plaintext password against a bcrypt digest. A malformed
// digest is reported as a mismatch, never an error.
func (h *PasswordHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
