package utils

import "testing"

func TestHashPassword(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Error("expected error for password under 8 characters")
	}

	hashed, err := HashPassword("zenith@2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashed == "zenith@2026" {
		t.Error("hash must not equal the plaintext password")
	}

	if err := CheckPassword("zenith@2026", hashed); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword("wrong-password", hashed); err == nil {
		t.Error("wrong password accepted")
	}
}
