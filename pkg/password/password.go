package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize = 16 // 128 bits
	keySize  = 32 // 256 bits

	DefaultIterations = 10000
)

// ErrMalformedHash the stored form is not base64(salt‖key) of the expected size.
var ErrMalformedHash = errors.New("password: malformed stored hash")

// Hasher PBKDF2-HMAC-SHA256 credential hasher.
type Hasher struct {
	Iterations int
}

// NewHasher falls back to DefaultIterations when iterations <= 0.
func NewHasher(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{Iterations: iterations}
}

// Hash derives a key from a fresh random salt and returns base64(salt‖key).
func (h *Hasher) Hash(secret string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: salt: %w", err)
	}
	key := pbkdf2.Key([]byte(secret), salt, h.iterations(), keySize, sha256.New)

	buf := make([]byte, 0, saltSize+keySize)
	buf = append(buf, salt...)
	buf = append(buf, key...)
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Verify re-derives the key with the embedded salt and compares in constant time.
// A malformed stored value returns ErrMalformedHash, never (false, nil).
func (h *Hasher) Verify(secret, stored string) (bool, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil || len(raw) != saltSize+keySize {
		return false, ErrMalformedHash
	}
	salt, want := raw[:saltSize], raw[saltSize:]
	got := pbkdf2.Key([]byte(secret), salt, h.iterations(), keySize, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func (h *Hasher) iterations() int {
	if h == nil || h.Iterations <= 0 {
		return DefaultIterations
	}
	return h.Iterations
}
