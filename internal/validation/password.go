package validation

import (
	"errors"
	"strings"
)

const minPasswordLength = 12

// commonPasswords are rejected outright regardless of length.
var commonPasswords = map[string]struct{}{
	"password1234": {},
	"123456789012": {},
	"qwertyuiop12": {},
	"iloveyou1234": {},
}

// ValidatePassword enforces the minimum length and rejects well-known
// passwords.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 12 characters")
	}

	_, common := commonPasswords[strings.ToLower(password)]
	if common {
		return errors.New("password is too common, please choose a stronger one")
	}

	return nil
}
