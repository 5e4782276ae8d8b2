package auth

import "testing"

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := HashPassword("mi_clave")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if first == "mi_clave" || first == "" {
		t.Fatalf("HashPassword() returned %q, want a non-empty hash distinct from the plaintext", first)
	}

	second, err := HashPassword("mi_clave")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical; the salt is not random")
	}
}

func TestCheckPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("mi_clave_segura")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !CheckPassword("mi_clave_segura", hash) {
		t.Error("CheckPassword() = false for the original plaintext")
	}
	if CheckPassword("otra_clave", hash) {
		t.Error("CheckPassword() = true for a different plaintext")
	}
	if CheckPassword("mi_clave_segura", "not-a-bcrypt-hash") {
		t.Error("CheckPassword() = true for a malformed hash")
	}
}
