package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every input validation failure; the error text
	// is safe to show to the client.
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidLevel       = errors.New("Invalid level")
	ErrItemNotFound       = errors.New("item not found")
	ErrSessionCompleted   = errors.New("game session already completed")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

func invalidf(format string, args ...interface{}) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}
