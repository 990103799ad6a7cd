package domain

import (
	"regexp"
	"strings"
)

// Matches local@domain.tld with no whitespace and no extra @.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is an immutable, validated email address.
// The stored value is trimmed and lower-cased.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(raw)
	if !emailRegex.MatchString(trimmed) {
		return Email{}, NewValidationError("Invalid email format")
	}
	return Email{value: strings.ToLower(trimmed)}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) Equals(other Email) bool {
	return e.value == other.value
}
