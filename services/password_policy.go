package services

import (
	"fmt"
	"unicode"
)

// MinPasswordLength applies to accounts created from the CLI
const MinPasswordLength = 8

// ValidatePassword requires MinPasswordLength characters mixing letters and digits
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("The password must be at least %d characters.", MinPasswordLength),
		}
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasLetter || !hasNumber {
		return &ValidationError{Field: "password", Message: "The password must contain letters and numbers."}
	}
	return nil
}
