package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pw123456" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword("pw123456", hash) {
		t.Fatal("correct password should verify")
	}
	if CheckPassword("wrong-pass", hash) {
		t.Fatal("wrong password should not verify")
	}
	if CheckPassword("pw123456", "not-a-hash") {
		t.Fatal("malformed hash should not verify")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Fatal("short password should be rejected")
	}
	if err := ValidatePassword("pw123456"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
}
