package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrValidation tags all input-validation failures so handlers can map them
// to a 400 without inspecting message text.
var ErrValidation = errors.New("validation failed")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// normalizeEmail trims whitespace and lowercases, the canonical form stored
// and compared everywhere.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}

// isValidGuestName accepts letters and spaces only.
func isValidGuestName(name string) bool {
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func checkEmail(email string) error {
	if email == "" {
		return invalid("email is required")
	}
	if len(email) > 100 {
		return invalid("email must not exceed 100 characters")
	}
	if !isValidEmail(email) {
		return invalid("email is not a valid email address")
	}
	return nil
}
