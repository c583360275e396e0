// Package crypto provides the authenticated encryption engine protecting
// credential secrets at rest. Secrets are sealed with AES-256-GCM under a
// key derived from the deployment master secret; a fresh random nonce is
// generated for every call and prepended to the ciphertext.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/rishikesh-suvarna/keyzy/internal/platform/entropy"
)

// keySize is the AES-256 key length in bytes.
const keySize = 32

// hkdfInfo is the HKDF-SHA256 info string for the record encryption key.
// It provides domain separation from any future derivation path; changing
// it invalidates all stored ciphertext.
var hkdfInfo = []byte("keyzy.record.enc.v1")

var (
	// ErrAuthenticationFailed is returned when the authentication tag does
	// not verify: tampered ciphertext, a wrong key, or a corrupted nonce.
	// Decryption fails closed and never yields partial plaintext.
	ErrAuthenticationFailed = errors.New("ciphertext authentication failed")

	// ErrInvalidKey is returned when the configured master secret is empty.
	ErrInvalidKey = errors.New("encryption key must not be empty")
)

// Engine seals and opens secret fields. The derived key lives only in
// process memory; the engine never persists it and never logs plaintext,
// ciphertext, or key material.
type Engine struct {
	aead cipher.AEAD
	src  entropy.Source
}

// NewEngine derives an AES-256 key from the master secret via HKDF-SHA256
// and prepares the GCM AEAD. How the master secret reaches the process
// (environment, secret manager) is the caller's concern.
func NewEngine(masterSecret string, src entropy.Source) (*Engine, error) {
	if masterSecret == "" {
		return nil, ErrInvalidKey
	}

	key := make([]byte, keySize)
	kdf := hkdf.New(sha256.New, []byte(masterSecret), nil, hkdfInfo)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	return &Engine{aead: aead, src: src}, nil
}

// Encrypt seals plaintext and returns base64(nonce || ciphertext || tag).
// The nonce comes from the entropy source on every call; it is never
// caller-supplied and never derived from non-random state, so reuse under
// the key cannot happen structurally. Empty plaintext is valid input.
func (e *Engine) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if err := e.src.Read(nonce); err != nil {
		return "", err
	}

	sealed := e.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope produced by Encrypt. Any malformed envelope or
// tag mismatch yields ErrAuthenticationFailed.
func (e *Engine) Decrypt(envelope string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	nonceSize := e.aead.NonceSize()
	if len(raw) < nonceSize {
		return nil, ErrAuthenticationFailed
	}
	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]

	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}
