package util

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the password hashes were created with
// in production. Lowering it would leave new hashes weaker than old ones.
const bcryptCost = 12

const passwordSymbols = "~!@#$%^&*()_-+=|{}[]:;<>?,./"

// HashPassword derives a salted bcrypt hash. The returned string embeds the
// algorithm version, cost and salt, so it is all that needs to be stored.
func HashPassword(password string) (string, error) {
	if len(password) == 0 {
		return "", errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// A malformed hash counts as a mismatch rather than an error.
func CheckPassword(password, encoded string) bool {
	if password == "" || encoded == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}

// ValidatePassword enforces the registration password policy: at least 8
// characters with one uppercase letter, one lowercase letter, one digit and
// one symbol, and no whitespace anywhere.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return errors.New("password must not contain whitespace")
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return errors.New("password must include an uppercase letter, a lowercase letter, a digit and a symbol")
	}
	return nil
}
