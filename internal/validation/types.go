package validation

import (
	"errors"
	"time"
)

// ValidationSeverity represents the severity level of a validation issue
type ValidationSeverity int

const (
	ValidationSeverityError ValidationSeverity = iota
	ValidationSeverityWarning
)

// ValidationErrorCode represents specific validation error types
type ValidationErrorCode int

const (
	ErrorNameRequired ValidationErrorCode = iota
	ErrorInvalidPhone
	ErrorInvalidDate
	ErrorDuplicatePhone
)

func (c ValidationErrorCode) String() string {
	switch c {
	case ErrorNameRequired:
		return "name_required"
	case ErrorInvalidPhone:
		return "invalid_phone"
	case ErrorInvalidDate:
		return "invalid_date"
	case ErrorDuplicatePhone:
		return "duplicate_phone"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidDate  = errors.New("invalid date")
)

// ValidationError represents a specific validation error
type ValidationError struct {
	Field    string
	Code     ValidationErrorCode
	Value    string
	Message  string
	Severity ValidationSeverity
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is match a ValidationError against the package sentinels.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrInvalidName:
		return e.Code == ErrorNameRequired
	case ErrInvalidPhone:
		return e.Code == ErrorInvalidPhone
	case ErrInvalidDate:
		return e.Code == ErrorInvalidDate
	}
	return false
}

// ValidationResult represents the result of contact validation
type ValidationResult struct {
	IsValid     bool
	ValidatedAt time.Time
	Errors      []ValidationError
	Warnings    []ValidationError
}

// Err returns the first blocking error, or nil when the result is valid.
func (r ValidationResult) Err() error {
	if r.IsValid || len(r.Errors) == 0 {
		return nil
	}
	err := r.Errors[0]
	return &err
}
