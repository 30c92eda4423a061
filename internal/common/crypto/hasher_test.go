package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcryptHasher() error = %v", err)
	}

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "secret1" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("Hash() returned %q, want a bcrypt hash", hash)
	}

	if err := h.Compare(hash, "secret1"); err != nil {
		t.Errorf("Compare() with correct password error = %v", err)
	}
	if err := h.Compare(hash, "secret2"); err == nil {
		t.Error("Compare() with wrong password returned nil")
	}
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	h, err := NewBcryptHasher(10)
	if err != nil {
		t.Fatalf("NewBcryptHasher() error = %v", err)
	}

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost() error = %v", err)
	}
	if cost != 10 {
		t.Errorf("cost = %d, want 10", cost)
	}
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	h, _ := NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("same-password")
	b, _ := h.Hash("same-password")
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestBcryptHasher_EmptyHashNeverMatches(t *testing.T) {
	h, _ := NewBcryptHasher(bcrypt.MinCost)

	err := h.Compare("", "movie-review-dummy-password")
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		t.Errorf("Compare(\"\") error = %v, want mismatch", err)
	}
}

func TestNewBcryptHasher_RejectsBadCost(t *testing.T) {
	if _, err := NewBcryptHasher(2); err == nil {
		t.Error("expected error for cost below minimum")
	}
}

func TestUUIDGenerator(t *testing.T) {
	id, err := NewUUIDGenerator().NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("NewID() = %q, not a uuid: %v", id, err)
	}
}
