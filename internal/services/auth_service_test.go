package services

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	auth := NewAuthService()

	for _, p := range []string{"secret12", "NewPass123", "пароль-с-юникодом", "p"} {
		hash, err := auth.HashPassword(p)
		if err != nil {
			t.Fatalf("HashPassword(%q) failed: %v", p, err)
		}
		if hash == p {
			t.Fatalf("hash equals plaintext for %q", p)
		}
		if !strings.HasPrefix(hash, "$2") {
			t.Errorf("expected a bcrypt hash, got %q", hash)
		}
		if !auth.CheckPassword(p, hash) {
			t.Errorf("CheckPassword(%q, hash) = false, want true", p)
		}
		if auth.CheckPassword(p+"x", hash) {
			t.Errorf("CheckPassword accepted a wrong password")
		}
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	auth := NewAuthService()
	if _, err := auth.HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestCheckPasswordEmptyHash(t *testing.T) {
	// google-only accounts have no stored hash and must never authenticate locally
	auth := NewAuthService()
	if auth.CheckPassword("anything", "") {
		t.Fatal("CheckPassword with empty hash must be false")
	}
}
