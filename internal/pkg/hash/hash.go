package hash

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAlgorithm is returned by NewPassword for an unsupported algorithm name.
var ErrUnknownAlgorithm = errors.New("hash: unknown algorithm")

// Hash hashes a plaintext and verifies a plaintext against a stored hash.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}

// PasswordOptions configures NewPassword.
type PasswordOptions struct {
	// Algorithm is "bcrypt" (default) or "argon2id".
	Algorithm string
	// Pepper is appended to every plaintext before hashing.
	Pepper string
	// BcryptCost is the bcrypt work factor; 0 uses bcrypt.DefaultCost.
	BcryptCost int
	// Argon2MemoryKiB overrides the argon2id memory cost when non-zero.
	Argon2MemoryKiB uint32
}

// NewPassword returns the password hasher named by opts.Algorithm.
func NewPassword(opts PasswordOptions) (Hash, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Algorithm)) {
	case "", "bcrypt":
		return NewBcrypt(opts.BcryptCost, opts.Pepper), nil
	case "argon2id":
		a := NewArgon2id(opts.Pepper)
		if opts.Argon2MemoryKiB > 0 {
			a.memory = opts.Argon2MemoryKiB
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, opts.Algorithm)
	}
}
