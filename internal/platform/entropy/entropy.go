// Package entropy wraps the operating system's cryptographically secure
// random generator. It is the sole source of randomness for key material,
// nonces, and generated passwords.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the OS entropy source cannot be read.
// There is no fallback: a host that cannot produce secure randomness
// must not generate passwords or nonces.
var ErrUnavailable = errors.New("secure entropy source unavailable")

// Source yields uniformly distributed random values from a
// cryptographically secure generator.
// As per Go convention, the interface is defined by the consumer side as well;
// this one exists so platform packages can share a single implementation.
type Source interface {
	// Uint32 returns the next random value.
	Uint32() (uint32, error)

	// Read fills b with random bytes, or fails with ErrUnavailable.
	Read(b []byte) error
}

// cryptoSource implements Source on top of crypto/rand.
// It carries no state and must never be seeded.
type cryptoSource struct{}

// NewSource returns a Source backed by crypto/rand.
func NewSource() Source {
	return cryptoSource{}
}

// Uint32 reads four bytes from crypto/rand.
func (cryptoSource) Uint32() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// Read fills b from crypto/rand.
func (cryptoSource) Read(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
