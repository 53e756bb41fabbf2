package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor (number of rounds = 2^cost).
const bcryptCost = 12

// preprocessPassword hashes the password with SHA-256 before bcrypt sees it.
// bcrypt silently truncates input at 72 bytes; hashing first keeps the full
// entropy of longer passwords inside that limit.
func preprocessPassword(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

// HashPassword hashes a password using bcrypt with SHA-256 preprocessing.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(preprocessPassword(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the plain password matches the stored hash.
func VerifyPassword(plainPassword, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), preprocessPassword(plainPassword)) == nil
}
