package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/storerating/config"
)

// HashPassword returns a bcrypt hash using BCRYPT_COST.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), config.BcryptCost())
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
