package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashIsSalted(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	second, err := hasher.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ (salted)")
	}
	if first == "Abcdef1!" || second == "Abcdef1!" {
		t.Error("digest must never equal the plaintext")
	}
	if !hasher.Verify("Abcdef1!", first) {
		t.Error("first digest should verify against the original password")
	}
	if !hasher.Verify("Abcdef1!", second) {
		t.Error("second digest should verify against the original password")
	}
}

func TestPasswordVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		digest   string
		want     bool
	}{
		{"correct password", "Abcdef1!", digest, true},
		{"wrong password", "wrong", digest, false},
		{"empty password", "", digest, false},
		{"malformed digest", "Abcdef1!", "not-a-bcrypt-digest", false},
		{"empty digest", "Abcdef1!", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasher.Verify(tt.password, tt.digest); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerifyAcrossCosts(t *testing.T) {
	// Seed data is hashed at a lower cost than production accounts; the cost
	// is embedded in the digest, so a production-cost hasher must still
	// verify it.
	seedHasher := NewPasswordHasher(bcrypt.MinCost)
	digest, err := seedHasher.Hash("Seed123!")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}

	prodHasher := NewPasswordHasher(12)
	if !prodHasher.Verify("Seed123!", digest) {
		t.Error("production hasher should verify a low-cost seed digest")
	}
}
