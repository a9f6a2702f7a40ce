package utils

import (
	"errors"
	"fmt"
)

// Error kinds returned by the repository and usecase layers. Handlers
// map these to HTTP statuses with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrAuth       = errors.New("auth failed")
	ErrConflict   = errors.New("already exists")
	ErrTransient  = errors.New("service unavailable")
)

func ValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

func NotFoundError(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func AuthError(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrAuth)
}

func ConflictError(what string) error {
	return fmt.Errorf("%s: %w", what, ErrConflict)
}

func TransientError(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrTransient)
}
