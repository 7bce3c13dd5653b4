package player

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an unknown player id.
var ErrNotFound = errors.New("player not found")

// ValidationError reports a rejected field on a write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
