// Package password implements server-side password generation from a
// character-class policy. Generation is the server's responsibility; clients
// only call the API and never roll their own.
package password

import (
	"errors"
	"strings"

	"github.com/rishikesh-suvarna/keyzy/internal/platform/entropy"
)

const (
	uppercaseLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseLetters = "abcdefghijklmnopqrstuvwxyz"
	numbers          = "0123456789"
	symbols          = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// similarChars are glyphs that are easy to misread for one another.
	// Both cases of each letter are excluded so the survivors match
	// [A-HJ-NP-Za-hjkmnp-z2-9].
	similarChars = "iIlL1oO0"

	// maxLength caps generated passwords so a single request cannot force
	// an arbitrarily large allocation or drain of the entropy source.
	maxLength = 128
)

var (
	// ErrInvalidPolicy is returned when no character class is selected or
	// the requested length is outside [1, maxLength].
	ErrInvalidPolicy = errors.New("invalid generation policy")

	// ErrAlphabetExhausted is returned when excluding similar glyphs leaves
	// no characters to draw from.
	ErrAlphabetExhausted = errors.New("character alphabet is empty after exclusions")
)

// Policy describes the shape of a password to generate. It is an ephemeral
// value object and is never persisted.
type Policy struct {
	Length         int
	IncludeUpper   bool
	IncludeLower   bool
	IncludeNumbers bool
	IncludeSymbols bool
	ExcludeSimilar bool
}

// Validate checks the policy invariants: a length in [1, maxLength] and at
// least one selected character class.
func (p Policy) Validate() error {
	if p.Length < 1 || p.Length > maxLength {
		return ErrInvalidPolicy
	}
	if !p.IncludeUpper && !p.IncludeLower && !p.IncludeNumbers && !p.IncludeSymbols {
		return ErrInvalidPolicy
	}
	return nil
}

// Generator builds passwords from a Policy using a secure entropy source.
type Generator struct {
	src entropy.Source
}

// NewGenerator creates a Generator drawing from the given entropy source.
func NewGenerator(src entropy.Source) *Generator {
	return &Generator{src: src}
}

// Generate returns a password of exactly policy.Length characters drawn
// uniformly from the union of the selected character classes. Draws use
// rejection sampling so a non-power-of-two alphabet does not skew the
// distribution. There is no seed parameter: output is deliberately not
// replayable.
func (g *Generator) Generate(policy Policy) (string, error) {
	if err := policy.Validate(); err != nil {
		return "", err
	}

	var alphabet string
	if policy.IncludeUpper {
		alphabet += uppercaseLetters
	}
	if policy.IncludeLower {
		alphabet += lowercaseLetters
	}
	if policy.IncludeNumbers {
		alphabet += numbers
	}
	if policy.IncludeSymbols {
		alphabet += symbols
	}

	if policy.ExcludeSimilar {
		for _, c := range similarChars {
			alphabet = strings.ReplaceAll(alphabet, string(c), "")
		}
	}
	if len(alphabet) == 0 {
		return "", ErrAlphabetExhausted
	}

	out := make([]byte, policy.Length)
	for i := range out {
		idx, err := g.uniformIndex(uint32(len(alphabet)))
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx]
	}
	return string(out), nil
}

// uniformIndex draws a uniform value in [0, n) from the entropy source.
// Values from the biased tail of the uint32 range are rejected and redrawn.
func (g *Generator) uniformIndex(n uint32) (uint32, error) {
	// Largest multiple of n that fits in a uint32. Draws at or above it
	// would over-represent the low residues.
	limit := (1 << 32 / uint64(n)) * uint64(n)
	for {
		v, err := g.src.Uint32()
		if err != nil {
			return 0, err
		}
		if uint64(v) < limit {
			return v % n, nil
		}
	}
}
