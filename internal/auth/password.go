package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"edustack/internal/common"
)

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// HashPassword returns a bcrypt hash. Passwords longer than 72 bytes are a
// validation failure on the password field.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", &common.ValidationError{Field: "password", Message: "password must be at most 72 bytes"}
	}
	return string(hash), err
}

// CheckPassword compares in constant time. An empty hash (unknown user)
// still pays for a comparison against a dummy hash.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		dummyOnce.Do(func() {
			dummyHash, _ = bcrypt.GenerateFromPassword([]byte("edustack-dummy-password"), bcrypt.DefaultCost)
		})
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
