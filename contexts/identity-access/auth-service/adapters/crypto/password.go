package cryptoadapter

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordChecker accepts bcrypt hashes and, for sheet-managed influencer
// passwords, plain values compared in constant time.
type PasswordChecker struct{}

func (PasswordChecker) Matches(stored string, password string) bool {
	stored = strings.TrimSpace(stored)
	if stored == "" || password == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
