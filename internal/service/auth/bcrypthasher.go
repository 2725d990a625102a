package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt reads at most 72 bytes of input. Longer passwords are truncated
// to that limit before hashing, so two passwords that share the first 72
// bytes produce the same digest.
const maxPasswordBytes = 72

const bcryptCost = 12

// Bcrypt password hasher
// Will be used as default one if caller not provide it's own
type BcryptHasher struct{}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcryptCost)
	return string(hash), err
}

// Compare returns non nil error if password does not match the digest.
// A malformed digest is reported the same way as a mismatch.
func (h BcryptHasher) Compare(hashedPassword string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), truncatePassword(password))
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		return b[:maxPasswordBytes]
	}
	return b
}
