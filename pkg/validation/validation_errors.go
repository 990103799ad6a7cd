package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels.
var FieldLabels = map[string]string{
	"Name":       "Name",
	"Surname":    "Surname",
	"Email":      "Email",
	"Phone":      "Phone",
	"Address":    "Address",
	"Education":  "Education",
	"Experience": "Experience",
}

// FormatValidationErrors converts validator.ValidationErrors to
// user-friendly messages.
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, e.Param())
	case "email":
		return fmt.Sprintf("%s has an invalid format", label)
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words.
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
