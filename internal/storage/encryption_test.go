package storage

import (
	"bytes"
	"strings"
	"testing"
)

// testEncryptionConfig keeps Argon2 cost low so the suite stays fast.
func testEncryptionConfig(passphrase string) *EncryptionConfig {
	cfg := DefaultEncryptionConfig(passphrase)
	cfg.Argon2Memory = 16 * 1024
	return cfg
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cfg := testEncryptionConfig("test-passphrase")
	plaintext := []byte(`{"systems":[],"events":[]}`)

	encrypted, err := EncryptData(plaintext, cfg)
	if err != nil {
		t.Fatalf("EncryptData failed: %v", err)
	}
	if bytes.Contains(encrypted, plaintext) {
		t.Error("Ciphertext must not contain the plaintext")
	}

	decrypted, err := DecryptData(encrypted, cfg)
	if err != nil {
		t.Fatalf("DecryptData failed: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("Round trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	encrypted, err := EncryptData([]byte("secret"), testEncryptionConfig("right"))
	if err != nil {
		t.Fatalf("EncryptData failed: %v", err)
	}

	if _, err := DecryptData(encrypted, testEncryptionConfig("wrong")); err == nil {
		t.Error("Expected decryption with the wrong passphrase to fail")
	}
}

func TestDecryptCorruptedData(t *testing.T) {
	cfg := testEncryptionConfig("test-passphrase")
	encrypted, err := EncryptData([]byte("secret"), cfg)
	if err != nil {
		t.Fatalf("EncryptData failed: %v", err)
	}

	encrypted[len(encrypted)-1] ^= 0xff
	if _, err := DecryptData(encrypted, cfg); err == nil {
		t.Error("Expected decryption of tampered data to fail")
	}
}

func TestDecryptTooShort(t *testing.T) {
	if _, err := DecryptData([]byte("short"), testEncryptionConfig("x")); err == nil {
		t.Error("Expected truncated input to be rejected")
	}
}

func TestEncryptRequiresPassphrase(t *testing.T) {
	if _, err := EncryptData([]byte("x"), nil); err == nil {
		t.Error("Expected nil config to be rejected")
	}
	if _, err := EncryptData([]byte("x"), &EncryptionConfig{}); err == nil {
		t.Error("Expected empty passphrase to be rejected")
	}
}

func TestEncryptIsSalted(t *testing.T) {
	cfg := testEncryptionConfig("test-passphrase")

	a, err := EncryptData([]byte("same input"), cfg)
	if err != nil {
		t.Fatalf("EncryptData failed: %v", err)
	}
	b, err := EncryptData([]byte("same input"), cfg)
	if err != nil {
		t.Fatalf("EncryptData failed: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("Expected distinct ciphertexts for the same input")
	}
}

func TestSlotValueFormat(t *testing.T) {
	cfg := testEncryptionConfig("test-passphrase")

	value, err := EncryptSlotValue([]byte(`{"generationCount":2}`), cfg)
	if err != nil {
		t.Fatalf("EncryptSlotValue failed: %v", err)
	}
	if !strings.HasPrefix(value, EncryptionMagicHeader) {
		t.Fatalf("Expected slot value prefixed with %q, got %q", EncryptionMagicHeader, value[:12])
	}

	plaintext, err := DecryptSlotValue(value, cfg)
	if err != nil {
		t.Fatalf("DecryptSlotValue failed: %v", err)
	}
	if string(plaintext) != `{"generationCount":2}` {
		t.Errorf("Round trip mismatch: %q", plaintext)
	}

	if _, err := DecryptSlotValue("plain json", cfg); err == nil {
		t.Error("Expected unprefixed value to be rejected")
	}
}
