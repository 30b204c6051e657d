package helpers

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const PasswordCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of plain. Input over 72 bytes is
// rejected by bcrypt.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// PasswordMatches reports whether plain matches hash. An empty hash never
// matches.
func PasswordMatches(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
