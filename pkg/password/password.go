// Package password derives and compares PBKDF2-SHA512 password verifiers.
package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltLen = 32
	HashLen = sha512.Size

	// DefaultIterations is the work factor every stored verifier was derived with.
	DefaultIterations = 262144
)

// Hasher derives verifiers with a fixed iteration count.
type Hasher struct {
	Iterations int
}

// Default is the production hasher.
var Default = Hasher{Iterations: DefaultIterations}

// NewSalt returns SaltLen random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Derive returns the HashLen-byte verifier for plain under salt.
func (h Hasher) Derive(plain string, salt []byte) []byte {
	iterations := h.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return pbkdf2.Key([]byte(plain), salt, iterations, HashLen, sha512.New)
}

// Verify derives plain under salt and compares it with want in constant time.
func (h Hasher) Verify(plain string, salt, want []byte) bool {
	return Equal(h.Derive(plain, salt), want)
}

// Equal compares two verifiers without short-circuiting.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
