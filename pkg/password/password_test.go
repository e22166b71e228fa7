package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if strings.Contains(hash, "secret1") {
		t.Fatal("hash must not contain the plaintext")
	}
	if !h.Verify("secret1", hash) {
		t.Error("Verify() should accept the correct password")
	}
	if h.Verify("secret2", hash) {
		t.Error("Verify() should reject a wrong password")
	}
	if h.Verify("secret1", "not-a-hash") {
		t.Error("Verify() should reject a malformed hash")
	}
}

func TestHasher_Salted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestHasher_EmptyPassword(t *testing.T) {
	if _, err := NewHasher(bcrypt.MinCost).Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("Hash(\"\") error = %v, want ErrEmptyPassword", err)
	}
}

func TestNewHasher_Cost(t *testing.T) {
	if c := NewHasher(0).Cost(); c != DefaultCost {
		t.Errorf("NewHasher(0).Cost() = %d, want %d", c, DefaultCost)
	}
	if c := NewHasher(bcrypt.MinCost).Cost(); c != bcrypt.MinCost {
		t.Errorf("Cost() = %d, want %d", c, bcrypt.MinCost)
	}

	hash, err := NewHasher(5).Hash("pw")
	if err != nil {
		t.Fatal(err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != 5 {
		t.Errorf("bcrypt.Cost() = %d, want 5", cost)
	}
}

func TestHasher_VerifyDummy(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	h.VerifyDummy("anything")
	h.VerifyDummy("again")
	if h.dummy == nil {
		t.Error("dummy hash should be initialised")
	}
}
