package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyEmail   = errors.New("email is empty")
	ErrInvalidEmail = errors.New("email is malformed")
)

// One "@", no whitespace, at least one "." after the "@".
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email is an immutable value object wrapping a validated address.
// The raw input is stored verbatim: no trimming, no case folding.
type Email struct {
	value string
}

// NewEmail validates raw and wraps it. Invalid input never produces an Email.
func NewEmail(raw string) (Email, error) {
	if strings.TrimSpace(raw) == "" {
		return Email{}, ErrEmptyEmail
	}
	if !emailShape.MatchString(raw) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: raw}, nil
}

func (e Email) Value() string { return e.value }

// Equals compares by value, not identity.
func (e Email) Equals(other Email) bool { return e.value == other.value }
