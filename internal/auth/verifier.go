package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks a submitted admin password. Implementations are stateless;
// there is no session or token issuance.
type Verifier interface {
	Verify(password string) bool
}

// NewVerifier picks an implementation based on the configured secret's shape:
// bcrypt hashes (the "$2" prefix) are verified with bcrypt, anything else is
// compared in constant time.
func NewVerifier(secret string) Verifier {
	if strings.HasPrefix(secret, "$2") {
		return &BcryptVerifier{hash: []byte(secret)}
	}
	return &StaticVerifier{secret: []byte(secret)}
}

// StaticVerifier compares against a fixed plaintext secret in constant time.
type StaticVerifier struct {
	secret []byte
}

func (v *StaticVerifier) Verify(password string) bool {
	if len(v.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(v.secret, []byte(password)) == 1
}

// BcryptVerifier compares against a bcrypt hash of the secret.
type BcryptVerifier struct {
	hash []byte
}

func (v *BcryptVerifier) Verify(password string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil
}
