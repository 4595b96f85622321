// Package identity provides the 128-bit identifier used as primary and
// foreign key for every entity. Identifiers are persisted in their 16-byte
// binary form and exchanged with clients in the canonical textual form.
package identity

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Size is the length of the binary form.
const Size = 16

// canonicalLen is the length of the textual form, e.g. 6ba7b810-9dad-11d1-80b4-00c04fd430c8.
const canonicalLen = 36

var (
	ErrMissingIdentifier = errors.New("identifier is missing")
	ErrInvalidIdentifier = errors.New("identifier is invalid")
)

// ID is a UUID that stores itself as 16 raw bytes.
type ID uuid.UUID

// Nil is the zero identifier.
var Nil ID

// New returns a random (version 4) identifier.
func New() ID {
	return ID(uuid.New())
}

// Parse accepts the canonical textual form or the raw 16-byte binary form.
// Empty input fails with ErrMissingIdentifier; anything else that is not one
// of the two forms fails with ErrInvalidIdentifier.
func Parse(candidate any) (ID, error) {
	switch v := candidate.(type) {
	case nil:
		return Nil, ErrMissingIdentifier
	case ID:
		return v, nil
	case *ID:
		if v == nil {
			return Nil, ErrMissingIdentifier
		}
		return *v, nil
	case uuid.UUID:
		return ID(v), nil
	case string:
		return parseString(v)
	case *string:
		if v == nil {
			return Nil, ErrMissingIdentifier
		}
		return parseString(*v)
	case []byte:
		return parseBytes(v)
	default:
		return Nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidIdentifier, candidate)
	}
}

// MustParse is Parse for constants in tests and seed data.
func MustParse(candidate any) ID {
	id, err := Parse(candidate)
	if err != nil {
		panic(err)
	}
	return id
}

func parseString(s string) (ID, error) {
	if s == "" {
		return Nil, ErrMissingIdentifier
	}
	if len(s) != canonicalLen {
		return Nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return ID(u), nil
}

func parseBytes(b []byte) (ID, error) {
	switch len(b) {
	case 0:
		return Nil, ErrMissingIdentifier
	case Size:
		var id ID
		copy(id[:], b)
		return id, nil
	case canonicalLen:
		// drivers hand text columns back as []byte
		return parseString(string(b))
	default:
		return Nil, fmt.Errorf("%w: %d bytes", ErrInvalidIdentifier, len(b))
	}
}

// String returns the canonical textual form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Bytes returns a copy of the binary form.
func (id ID) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, id[:])
	return b
}

// IsNil reports whether id is the zero identifier.
func (id ID) IsNil() bool {
	return id == Nil
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := parseString(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value stores the identifier as binary, never as text.
func (id ID) Value() (driver.Value, error) {
	return id.Bytes(), nil
}

func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		parsed, err := parseBytes(v)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	case string:
		parsed, err := Parse([]byte(v))
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidIdentifier, src)
	}
}

func (ID) GormDataType() string {
	return "bytes"
}

// GormDBDataType picks a fixed 16-byte column where the dialect has one.
func (ID) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "bytea"
	case "mysql":
		return "binary(16)"
	default:
		return "blob"
	}
}
