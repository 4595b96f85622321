package repositories

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrInvalidRange      = errors.New("invalid range")
	ErrConnectionFailure = errors.New("store unavailable")
)

func connectionFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrConnectionFailure, op, err)
}
