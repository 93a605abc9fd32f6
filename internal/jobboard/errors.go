package jobboard

import (
	"errors"
	"fmt"
)

// Domain errors returned by Service. Handlers translate them into the
// client-facing messages.
var (
	ErrNotFound           = errors.New("not found")
	ErrJobNotFound        = fmt.Errorf("job %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientFunds  = errors.New("insufficient tokens")
	ErrProcessingFailed   = errors.New("processing failed")
	ErrInvalidInput       = errors.New("invalid input")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
