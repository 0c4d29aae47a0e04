// Package keys seals the custodial minter key for at-rest storage.
// The signing key never sits in config in the clear: it is sealed with
// AES-256-GCM under a key derived from the operator's master secret.
package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const masterKeySize = 32

// Context label mixed into the derived sealing key so a master secret
// reused elsewhere yields an unrelated key here.
var sealInfo = []byte("biomint-minter-key-v1")

// GenerateMasterKey generates a new random 32-byte master key.
// This should be stored securely (environment variable, secrets manager, etc.)
func GenerateMasterKey() ([]byte, error) {
	key := make([]byte, masterKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

// MasterKeyFromBase64 decodes a base64-encoded master key
func MasterKeyFromBase64(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode master key: %w", err)
	}
	if len(key) != masterKeySize {
		return nil, fmt.Errorf("master key must be %d bytes, got %d", masterKeySize, len(key))
	}
	return key, nil
}

// MasterKeyToBase64 encodes a master key as base64 for storage
func MasterKeyToBase64(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// deriveSealingKey derives the AES key from the master key using HKDF-SHA256.
func deriveSealingKey(masterKey []byte) ([]byte, error) {
	if len(masterKey) != masterKeySize {
		return nil, fmt.Errorf("master key must be %d bytes (AES-256)", masterKeySize)
	}

	reader := hkdf.New(sha256.New, masterKey, nil, sealInfo)
	key := make([]byte, masterKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive sealing key: %w", err)
	}
	return key, nil
}

// Seal encrypts a private key with AES-256-GCM under the derived sealing key.
// Returns base64-encoded: nonce || ciphertext || tag
func Seal(privateKey, masterKey []byte) (string, error) {
	sealingKey, err := deriveSealingKey(masterKey)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(sealingKey)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, privateKey, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Open decrypts a sealed private key produced by Seal.
func Open(sealed string, masterKey []byte) ([]byte, error) {
	sealingKey, err := deriveSealingKey(masterKey)
	if err != nil {
		return nil, err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sealed key: %w", err)
	}

	block, err := aes.NewCipher(sealingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("sealed key too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt sealed key: %w", err)
	}

	return plaintext, nil
}
