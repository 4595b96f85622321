package validation

import (
	"errors"
	"fmt"

	"github.com/KDAtkins/infrastructure/internal/identity"
)

var (
	ErrEmpty            = errors.New("empty")
	ErrTooLong          = errors.New("too long")
	ErrOutOfRange       = errors.New("out of range")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidLength    = errors.New("invalid length")

	ErrInvalidIdentifier = identity.ErrInvalidIdentifier
	ErrMissingIdentifier = identity.ErrMissingIdentifier
)

// FieldError reports which field failed which rule. Err is always one of the
// sentinels above so callers can classify with errors.Is.
type FieldError struct {
	Field string
	Err   error
	Msg   string
}

func (e *FieldError) Error() string {
	return e.Msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErr(field string, kind error, format string, args ...any) error {
	return &FieldError{Field: field, Err: kind, Msg: field + " " + fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err came out of one of the rules.
func IsValidationError(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}
