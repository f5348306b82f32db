// Package cryptox derives and checks the stored form of the unlock PIN.
//
// A PIN is never written in clear: HashPIN stores a random salt and a
// verifier (sha256 of the argon2id key), and VerifyPIN re-derives the key
// from a candidate and compares verifiers in constant time.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	hashPrefix = "argon2id"
	saltSize   = 16
)

var ErrMalformedHash = errors.New("malformed PIN hash")

func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

func GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// HashPIN returns "argon2id$<salt>$<verifier>" with hex-encoded parts.
func HashPIN(pin string) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	verifier := MakeVerifier(DeriveKey([]byte(pin), salt))
	return strings.Join([]string{hashPrefix, hex.EncodeToString(salt), hex.EncodeToString(verifier)}, "$"), nil
}

// IsHashed reports whether stored looks like a HashPIN result.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, hashPrefix+"$")
}

// VerifyPIN checks candidate against a HashPIN result. Values written by
// older builds that kept the PIN in clear are compared directly.
func VerifyPIN(candidate, stored string) (bool, error) {
	if stored == "" {
		return false, nil
	}
	if !IsHashed(stored) {
		return subtle.ConstantTimeCompare([]byte(candidate), []byte(stored)) == 1, nil
	}

	parts := strings.Split(stored, "$")
	if len(parts) != 3 {
		return false, ErrMalformedHash
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return false, fmt.Errorf("%w: verifier: %v", ErrMalformedHash, err)
	}

	got := MakeVerifier(DeriveKey([]byte(candidate), salt))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// Wipe zeroes b in place. Use it on PIN buffers once they are consumed.
func Wipe(b []byte) {
	clear(b)
}
