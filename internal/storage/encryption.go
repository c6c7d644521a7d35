package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// EncryptionMagicHeader prefixes encrypted slot values so plain and
// encrypted snapshots can coexist across config changes.
const EncryptionMagicHeader = "DARCENC1"

const (
	// Argon2id parameters per RFC 9106 recommendations.
	defaultArgon2Time    = 1
	defaultArgon2Memory  = 64 * 1024 // 64 MB
	defaultArgon2Threads = 4
	defaultArgon2KeyLen  = 32 // 256 bits for AES-256

	saltLength = 32
)

// EncryptionConfig holds the passphrase and key-derivation parameters
// for snapshot encryption at rest.
type EncryptionConfig struct {
	// Passphrase is the encryption passphrase.
	Passphrase string

	// Argon2Time is the number of Argon2 iterations.
	Argon2Time uint32

	// Argon2Memory is the Argon2 memory cost in KB.
	Argon2Memory uint32

	// Argon2Threads is the Argon2 parallelism.
	Argon2Threads uint8
}

// DefaultEncryptionConfig returns an encryption config with secure
// defaults for the given passphrase.
func DefaultEncryptionConfig(passphrase string) *EncryptionConfig {
	return &EncryptionConfig{
		Passphrase:    passphrase,
		Argon2Time:    defaultArgon2Time,
		Argon2Memory:  defaultArgon2Memory,
		Argon2Threads: defaultArgon2Threads,
	}
}

// deriveKey derives an AES key from the passphrase using Argon2id.
func deriveKey(passphrase string, salt []byte, config *EncryptionConfig) []byte {
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		config.Argon2Time,
		config.Argon2Memory,
		config.Argon2Threads,
		defaultArgon2KeyLen,
	)
}

// EncryptData encrypts data with AES-256-GCM under a key derived from
// the passphrase. Output layout: salt || nonce || ciphertext+tag.
func EncryptData(plaintext []byte, config *EncryptionConfig) ([]byte, error) {
	if config == nil || config.Passphrase == "" {
		return nil, fmt.Errorf("encryption config with passphrase required")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := deriveKey(config.Passphrase, salt, config)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	result := make([]byte, 0, len(salt)+len(nonce)+len(ciphertext))
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, ciphertext...)
	return result, nil
}

// DecryptData reverses EncryptData.
func DecryptData(encrypted []byte, config *EncryptionConfig) ([]byte, error) {
	if config == nil || config.Passphrase == "" {
		return nil, fmt.Errorf("encryption config with passphrase required")
	}

	// Minimum: salt + 12-byte nonce + 16-byte auth tag.
	minSize := saltLength + 12 + 16
	if len(encrypted) < minSize {
		return nil, fmt.Errorf("encrypted data too short")
	}

	salt := encrypted[:saltLength]
	encrypted = encrypted[saltLength:]

	key := deriveKey(config.Passphrase, salt, config)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(encrypted) < nonceSize {
		return nil, fmt.Errorf("encrypted data too short for nonce")
	}
	nonce := encrypted[:nonceSize]
	ciphertext := encrypted[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed (wrong passphrase or corrupted data): %w", err)
	}
	return plaintext, nil
}

// EncryptSlotValue encrypts a serialized snapshot into the textual
// slot format: magic header + base64 payload.
func EncryptSlotValue(plaintext []byte, config *EncryptionConfig) (string, error) {
	encrypted, err := EncryptData(plaintext, config)
	if err != nil {
		return "", err
	}
	return EncryptionMagicHeader + base64.StdEncoding.EncodeToString(encrypted), nil
}

// DecryptSlotValue decodes and decrypts a slot value produced by
// EncryptSlotValue.
func DecryptSlotValue(value string, config *EncryptionConfig) ([]byte, error) {
	if !strings.HasPrefix(value, EncryptionMagicHeader) {
		return nil, fmt.Errorf("slot value is not encrypted")
	}
	encrypted, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, EncryptionMagicHeader))
	if err != nil {
		return nil, fmt.Errorf("failed to decode encrypted slot: %w", err)
	}
	return DecryptData(encrypted, config)
}
