package helpers

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash equals plaintext")
	}
	if !CompareHashAndPassword(hash, "secret123") {
		t.Fatal("expected matching password to compare true")
	}
	if CompareHashAndPassword(hash, "secret124") {
		t.Fatal("expected mismatched password to compare false")
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	a, err := GenerateToken(32)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	b, err := GenerateToken(32)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if a == b {
		t.Fatal("two generated tokens are equal")
	}
	if len(a) < 32 {
		t.Fatalf("token too short: %d", len(a))
	}
}
