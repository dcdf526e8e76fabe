package validate

import (
	"regexp"
	"strings"
)

// FieldError identifies why a field is invalid. Field errors are advisory,
// they block commits but never raise.
type FieldError string

// Field error codes.
const (
	ErrRequired       FieldError = "required"
	ErrOutOfRange     FieldError = "outOfRange"
	ErrInvalidEmail   FieldError = "invalidEmail"
	ErrNotUniqueEmail FieldError = "notUniqueEmail"
	ErrInvalidRole    FieldError = "invalidRole"
)

// Age bounds.
const (
	MinAge = 18
	MaxAge = 120
)

var emailExpr = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)

// Required reports whether the value is non-empty after trimming.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// AgeInRange reports whether the age satisfies the domain constraint.
func AgeInRange(age int) bool {
	return age >= MinAge && age <= MaxAge
}

// EmailShape reports whether the value looks like an email address. This is
// a shape check only, uniqueness is separate.
func EmailShape(value string) bool {
	return emailExpr.MatchString(strings.TrimSpace(value))
}
