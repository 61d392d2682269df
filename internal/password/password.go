// Package password hashes account passwords with argon2id.
package password

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

type Hasher struct {
	params *argon2id.Params
}

func NewHasher(params *argon2id.Params) *Hasher {
	if params == nil {
		params = argon2id.DefaultParams
	}
	return &Hasher{params: params}
}

// Hash returns an encoded argon2id hash with a random salt, in the format
// $argon2id$v=19$m=65536,t=1,p=2$<salt>$<key>.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := argon2id.CreateHash(plaintext, h.params)
	if err != nil {
		return "", fmt.Errorf("create password hash: %w", err)
	}
	return hash, nil
}

// Verify compares plaintext against hash in constant time.
func (h *Hasher) Verify(plaintext, hash string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(plaintext, hash)
	if err != nil {
		return false, fmt.Errorf("compare password hash: %w", err)
	}
	return match, nil
}
