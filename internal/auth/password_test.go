package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("segura1234")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "segura1234" {
		t.Fatal("Hash must not equal the plain password")
	}

	if !VerifyPassword(hash, "segura1234") {
		t.Error("Expected correct password to verify")
	}
	if VerifyPassword(hash, "incorrecta") {
		t.Error("Expected wrong password to fail verification")
	}
	if VerifyPassword(hash, "") {
		t.Error("Expected empty password to fail verification")
	}
}

// The digest goes first. Passing the plaintext there must never verify,
// whichever secret comes second.
func TestVerifyPasswordArgumentOrder(t *testing.T) {
	hash, err := HashPassword("segura1234")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if VerifyPassword("segura1234", hash) {
		t.Error("Expected swapped arguments to fail verification")
	}
	if VerifyPassword("segura1234", "segura1234") {
		t.Error("Expected plaintext in the digest position to fail verification")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "whatever") {
		t.Error("Expected malformed hash to fail closed")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("segura1234")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	h2, err := HashPassword("segura1234")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if h1 == h2 {
		t.Error("Expected distinct salts to produce distinct hashes")
	}
}
