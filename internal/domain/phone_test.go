package domain_test

import (
	"testing"

	"ats-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNewPhoneNumber(t *testing.T) {
	t.Run("Should fail on empty input", func(t *testing.T) {
		_, err := domain.NewPhoneNumber("")
		assert.EqualError(t, err, "Phone number is required")
	})

	t.Run("Should enforce digit count between 9 and 15", func(t *testing.T) {
		cases := []struct {
			raw   string
			valid bool
		}{
			{"12345678", false},          // 8 digits
			{"123456789", true},          // 9 digits
			{"123-456-7890", true},       // 10 digits
			{"123456789012345", true},    // 15 digits
			{"1234567890123456", false},  // 16 digits
			{"(12) 34-56", false},        // 6 digits with decoration
			{"+1 (234) 567-8901", true},  // 11 digits
			{"not a phone number", false},
		}
		for _, tc := range cases {
			_, err := domain.NewPhoneNumber(tc.raw)
			if tc.valid {
				assert.NoError(t, err, "expected %q to be valid", tc.raw)
			} else {
				assert.EqualError(t, err, "Phone number must be between 9 and 15 digits", "raw=%q", tc.raw)
			}
		}
	})

	t.Run("Should strip separators and keep a leading plus", func(t *testing.T) {
		cases := []struct {
			raw      string
			expected string
		}{
			{"123-456-7890", "1234567890"},
			{"+1 (234) 567-8901", "+12345678901"},
			{"12 34 56 78 90", "1234567890"},
			{"123+456+789", "123456789"}, // only a leading + survives
		}
		for _, tc := range cases {
			phone, err := domain.NewPhoneNumber(tc.raw)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, phone.Value())
		}
	})

	t.Run("Equality is on the normalized value", func(t *testing.T) {
		a, _ := domain.NewPhoneNumber("+1 (234) 567-8901")
		b, _ := domain.NewPhoneNumber("+12345678901")
		c, _ := domain.NewPhoneNumber("999999999")
		assert.True(t, a.Equals(b))
		assert.False(t, a.Equals(c))
	})
}
