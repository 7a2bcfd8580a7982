// Package validator provides a small Validator type for accumulating
// field-level validation errors, plus the sanitisation helpers applied to
// every submitted string before it reaches a model.
package validator

import (
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// AlphaNumRX matches strings made up entirely of unicode letters and digits.
var AlphaNumRX = regexp.MustCompile(`^[\p{L}\p{N}]+$`)

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// If key already has an error it is not overwritten, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(title != "", "title", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

// Matches returns true if value matches the provided compiled regexp.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// RunesBetween returns true if the rune count of value lies in [min, max].
func RunesBetween(value string, min, max int) bool {
	n := utf8.RuneCountInString(value)
	return n >= min && n <= max
}

// Sanitize trims surrounding whitespace and HTML-escapes the value. Every
// submitted string field passes through this before reaching an entity.
func Sanitize(value string) string {
	return html.EscapeString(strings.TrimSpace(value))
}

// ParseDate parses an ISO calendar date from a form field. The boolean is
// false when the field was empty, which is not an error.
func ParseDate(value string) (time.Time, bool, error) {
	if value == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
