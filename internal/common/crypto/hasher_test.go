package crypto

import "testing"

func TestBcryptHasher(t *testing.T) {
	h := &BcryptHasher{}

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if hash == "secret1" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := h.Compare(hash, "secret1"); err != nil {
		t.Errorf("expected correct password to verify, got %v", err)
	}

	if err := h.Compare(hash, "secret1x"); err == nil {
		t.Error("expected wrong password to fail verification")
	}
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	h := &BcryptHasher{}

	first, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first == second {
		t.Error("hashing the same password twice must produce different salted hashes")
	}
}
