// Package cryptox turns account passwords into stored credential material.
//
// A password is never persisted. Registration stores a random salt and a
// verifier, sha256(argon2id(password, salt)); login recomputes the verifier
// and compares in constant time.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/momverse/momverse/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated salt in bytes.
const SaltSize = 32

// NewSalt returns SaltSize random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveKey stretches password with argon2id.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key so the key itself is not stored.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewCredentials derives a salt and verifier pair for password.
func NewCredentials(password []byte) (salt, verifier []byte) {
	salt = NewSalt()
	return salt, MakeVerifier(DeriveKey(password, salt))
}

// CheckPassword reports whether password matches the stored salt and
// verifier. Empty stored material never matches.
func CheckPassword(password, salt, verifier []byte) bool {
	if len(salt) == 0 || len(verifier) == 0 {
		return false
	}
	candidate := MakeVerifier(DeriveKey(password, salt))
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}
