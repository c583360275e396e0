// Package jwtmw verifies bearer assertions issued by the external identity
// provider and resolves them to internal users. Issuance and federation are
// out of scope: the package only needs verify-and-extract-subject.
package jwtmw

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the shared
// verification secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// ErrInvalidToken is returned for any assertion that fails verification:
// bad signature, wrong algorithm, expired, or malformed claims. Callers get
// no finer detail, uniformly.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the subject information extracted from a verified assertion.
type Claims struct {
	// Subject is the identity provider's stable subject identifier.
	Subject string
	// Email is the address claim, when the provider includes one.
	Email string
}

// Verifier checks a bearer assertion and extracts its subject. Abstracted
// as an interface so the middleware is testable with a fake verifier and a
// different provider integration can be swapped in.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// hs256Verifier verifies HMAC-signed assertions with a shared secret.
type hs256Verifier struct {
	secret []byte
}

// NewHS256Verifier creates a Verifier for HS256-signed assertions.
func NewHS256Verifier(secret string) Verifier {
	return &hs256Verifier{secret: []byte(secret)}
}

// Verify parses and validates the assertion. Only HMAC signing methods are
// accepted; expiry is enforced by the parser.
func (v *hs256Verifier) Verify(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return Claims{}, ErrInvalidToken
	}

	out := Claims{Subject: sub}
	if email, ok := mapClaims["email"].(string); ok {
		out.Email = email
	}
	return out, nil
}
