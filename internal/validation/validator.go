package validation

import (
	"fmt"
	"strings"
	"time"
)

// BirthdayLayout is the only accepted birthday format (DD.MM.YYYY).
const BirthdayLayout = "02.01.2006"

const phoneLength = 10

// ValidateName checks that a contact name is not blank.
func ValidateName(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &ValidationError{
			Field:    "name",
			Code:     ErrorNameRequired,
			Value:    raw,
			Message:  "Name is required",
			Severity: ValidationSeverityError,
		}
	}
	return nil
}

// ValidatePhone checks that raw is exactly ten ASCII digits.
func ValidatePhone(raw string) error {
	if len(raw) != phoneLength || !isDigits(raw) {
		return &ValidationError{
			Field:    "phone",
			Code:     ErrorInvalidPhone,
			Value:    raw,
			Message:  fmt.Sprintf("Phone number must be %d digits, got %q", phoneLength, raw),
			Severity: ValidationSeverityError,
		}
	}
	return nil
}

// ParseBirthday parses a DD.MM.YYYY date into a UTC calendar date.
func ParseBirthday(raw string) (time.Time, error) {
	t, err := time.Parse(BirthdayLayout, raw)
	if err != nil {
		return time.Time{}, &ValidationError{
			Field:    "birthday",
			Code:     ErrorInvalidDate,
			Value:    raw,
			Message:  fmt.Sprintf("Invalid date format %q. Use DD.MM.YYYY", raw),
			Severity: ValidationSeverityError,
		}
	}
	return t, nil
}

// ValidateContact validates every field of an incoming contact at once.
// Duplicate phones are reported as warnings only.
func ValidateContact(name string, phones []string, birthday string) ValidationResult {
	result := ValidationResult{
		IsValid:     true,
		ValidatedAt: time.Now(),
	}

	if err := ValidateName(name); err != nil {
		result.Errors = append(result.Errors, *err.(*ValidationError))
		result.IsValid = false
	}

	seen := make(map[string]bool, len(phones))
	for _, phone := range phones {
		if err := ValidatePhone(phone); err != nil {
			result.Errors = append(result.Errors, *err.(*ValidationError))
			result.IsValid = false
			continue
		}
		if seen[phone] {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:    "phone",
				Code:     ErrorDuplicatePhone,
				Value:    phone,
				Message:  fmt.Sprintf("Phone %s is listed more than once", phone),
				Severity: ValidationSeverityWarning,
			})
		}
		seen[phone] = true
	}

	if birthday != "" {
		if _, err := ParseBirthday(birthday); err != nil {
			result.Errors = append(result.Errors, *err.(*ValidationError))
			result.IsValid = false
		}
	}

	return result
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
