package domain

import (
	"strings"
	"unicode"
)

// PhoneNumber is an immutable, validated phone number.
// Normalization keeps digits and a leading +; whitespace, hyphens,
// parentheses and any other + are stripped.
type PhoneNumber struct {
	value string
}

func NewPhoneNumber(raw string) (PhoneNumber, error) {
	if raw == "" {
		return PhoneNumber{}, NewValidationError("Phone number is required")
	}

	digits := 0
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 9 || digits > 15 {
		return PhoneNumber{}, NewValidationError("Phone number must be between 9 and 15 digits")
	}

	return PhoneNumber{value: normalizePhone(raw)}, nil
}

func normalizePhone(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			continue
		}
		if r == '+' && i != 0 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (p PhoneNumber) Value() string {
	return p.value
}

func (p PhoneNumber) Equals(other PhoneNumber) bool {
	return p.value == other.value
}
