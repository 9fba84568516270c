package auth

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrUserExists         = errors.New("auth service: user already exists")
	ErrInvalidToken       = errors.New("auth service: invalid token")
	ErrUserNotFound       = errors.New("auth service: no account for this email")
	ErrInvalidCredentials = errors.New("auth service: invalid credentials")
	ErrUserNotVerified    = errors.New("auth service: email not verified")
)

// ValidationError carries every violated field of a request with its message.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := slices.Sorted(maps.Keys(e.Errors))
	return "auth service: invalid input: " + strings.Join(fields, ", ")
}

func newValidationError(errs map[string]string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
