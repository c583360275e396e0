package crypto

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/rishikesh-suvarna/keyzy/internal/platform/entropy"
)

func newTestEngine(t *testing.T, secret string) *Engine {
	t.Helper()
	e, err := NewEngine(secret, entropy.NewSource())
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return e
}

func TestNewEngine_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewEngine("", entropy.NewSource())
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got: %v", err)
	}
}

func TestEngine_RoundTrip(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "master-secret")

	tests := []struct {
		name      string
		plaintext string
	}{
		{"short password", "p@ss"},
		{"empty plaintext", ""},
		{"unicode", "pässwörd✓"},
		{"long notes", string(make([]byte, 4096))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := e.Encrypt([]byte(tt.plaintext))
			if err != nil {
				t.Fatalf("encrypt failed: %v", err)
			}
			if envelope == "" {
				t.Fatal("envelope is empty")
			}

			got, err := e.Decrypt(envelope)
			if err != nil {
				t.Fatalf("decrypt failed: %v", err)
			}
			if string(got) != tt.plaintext {
				t.Errorf("round trip mismatch: got %q, want %q", got, tt.plaintext)
			}
		})
	}
}

func TestEngine_Decrypt_WrongKey(t *testing.T) {
	t.Parallel()

	e1 := newTestEngine(t, "key-one")
	e2 := newTestEngine(t, "key-two")

	envelope, err := e1.Encrypt([]byte("secret"))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	_, err = e2.Decrypt(envelope)
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got: %v", err)
	}
}

func TestEngine_Decrypt_Tampered(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "master-secret")

	envelope, err := e.Encrypt([]byte("secret"))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	// Flip one ciphertext bit.
	raw[len(raw)-1] ^= 0x01
	tampered := base64.StdEncoding.EncodeToString(raw)

	_, err = e.Decrypt(tampered)
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got: %v", err)
	}
}

func TestEngine_Decrypt_Malformed(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "master-secret")

	tests := []struct {
		name     string
		envelope string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"too short for nonce", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Decrypt(tt.envelope)
			if !errors.Is(err, ErrAuthenticationFailed) {
				t.Errorf("expected ErrAuthenticationFailed, got: %v", err)
			}
		})
	}
}

func TestEngine_NonceUniqueness(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "master-secret")

	const trials = 10000
	seen := make(map[string]struct{}, trials)
	for i := 0; i < trials; i++ {
		envelope, err := e.Encrypt([]byte("m"))
		if err != nil {
			t.Fatalf("encrypt failed on trial %d: %v", i, err)
		}
		raw, err := base64.StdEncoding.DecodeString(envelope)
		if err != nil {
			t.Fatalf("failed to decode envelope: %v", err)
		}
		nonce := string(raw[:e.aead.NonceSize()])
		if _, dup := seen[nonce]; dup {
			t.Fatalf("nonce repeated on trial %d", i)
		}
		seen[nonce] = struct{}{}
	}
}

func TestEngine_EnvelopesDiffer(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "master-secret")

	a, err := e.Encrypt([]byte("same plaintext"))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	b, err := e.Encrypt([]byte("same plaintext"))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if a == b {
		t.Error("two encryptions of the same plaintext produced identical envelopes")
	}
}
