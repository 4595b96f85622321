// Package validation holds the field rules every entity applies before it
// assigns a value. Rules are pure apart from Timestamp, which reads the clock
// when no value is supplied.
package validation

import (
	"errors"
	"fmt"
	"math"
	"net/netip"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/KDAtkins/infrastructure/internal/identity"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
)

const (
	MaxEmailLen = 128
	TokenLen    = 32
)

var (
	validate   = validator.New()
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	now        = time.Now
)

// Text trims and strips markup and control characters from raw, then checks
// the rune length against maxLen. Text(Text(s)) == Text(s) for every s that
// passes.
func Text(field, raw string, maxLen int) (string, error) {
	s := strings.ToValidUTF8(raw, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '<' || r == '>':
			return -1
		case r == '\n' || r == '\r' || r == '\t':
			return r
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)

	if s == "" {
		return "", fieldErr(field, ErrEmpty, "is empty or insecure")
	}
	if n := utf8.RuneCountInString(s); n > maxLen {
		return "", fieldErr(field, ErrTooLong, "is too long (%d > %d characters)", n, maxLen)
	}
	return s, nil
}

// Float checks min <= raw <= max.
func Float(field string, raw, min, max float64) (float64, error) {
	if math.IsNaN(raw) || raw < min || raw > max {
		return 0, fieldErr(field, ErrOutOfRange, "must be between %g and %g", min, max)
	}
	return raw, nil
}

// Int checks min <= raw <= max.
func Int(field string, raw, min, max int) (int, error) {
	if raw < min || raw > max {
		return 0, fieldErr(field, ErrOutOfRange, "must be between %d and %d", min, max)
	}
	return raw, nil
}

// Latitude and Longitude are Float with geographic bounds.
func Latitude(field string, raw float64) (float64, error) {
	return Float(field, raw, -90, 90)
}

func Longitude(field string, raw float64) (float64, error) {
	return Float(field, raw, -180, 180)
}

// Timestamp accepts a time.Time, a parseable string, or nothing. Nothing
// yields the current time at the moment of the call; a blank string fails.
// Results are UTC with microsecond precision, which is what the database
// keeps.
func Timestamp(field string, raw any) (time.Time, error) {
	var t time.Time
	switch v := raw.(type) {
	case nil:
		t = now()
	case time.Time:
		t = v
		if t.IsZero() {
			t = now()
		}
	case *time.Time:
		if v == nil || v.IsZero() {
			t = now()
		} else {
			t = *v
		}
	case string:
		parsed, err := parseTime(field, v)
		if err != nil {
			return time.Time{}, err
		}
		t = parsed
	case *string:
		if v == nil {
			t = now()
			break
		}
		parsed, err := parseTime(field, *v)
		if err != nil {
			return time.Time{}, err
		}
		t = parsed
	default:
		return time.Time{}, fieldErr(field, ErrInvalidTimestamp, "has unsupported type %T", raw)
	}
	return t.UTC().Truncate(time.Microsecond), nil
}

func parseTime(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fieldErr(field, ErrInvalidTimestamp, "is blank")
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fieldErr(field, ErrInvalidTimestamp, "is not a valid date: %q", s)
	}
	return t, nil
}

// Address parses an IPv4 or IPv6 address and returns its 16-byte form.
// IPv4 addresses become IPv4-mapped IPv6.
func Address(field, raw string) ([]byte, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return nil, fieldErr(field, ErrInvalidAddress, "is not a valid IP address")
	}
	b := addr.WithZone("").As16()
	return b[:], nil
}

// Identifier parses a UUID in textual or binary form.
func Identifier(field string, raw any) (identity.ID, error) {
	id, err := identity.Parse(raw)
	if err != nil {
		if errors.Is(err, identity.ErrMissingIdentifier) {
			return identity.Nil, fieldErr(field, ErrMissingIdentifier, "is missing")
		}
		return identity.Nil, fieldErr(field, ErrInvalidIdentifier, "is not a valid UUID")
	}
	return id, nil
}

// Email trims and lowercases raw and checks it is an address.
func Email(field, raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", fieldErr(field, ErrEmpty, "is empty")
	}
	if n := utf8.RuneCountInString(s); n > MaxEmailLen {
		return "", fieldErr(field, ErrTooLong, "is too long (%d > %d characters)", n, MaxEmailLen)
	}
	if err := validate.Var(s, "email"); err != nil {
		return "", fieldErr(field, ErrInvalidEmail, "is not a valid email address")
	}
	return s, nil
}

// FixedBytes checks raw is exactly size bytes long and returns a copy.
func FixedBytes(field string, raw []byte, size int) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fieldErr(field, ErrEmpty, "is empty")
	}
	if len(raw) != size {
		return nil, fieldErr(field, ErrInvalidLength, "must be %d bytes, got %d", size, len(raw))
	}
	b := make([]byte, size)
	copy(b, raw)
	return b, nil
}

// Token checks a 32 character hexadecimal token such as an activation token.
func Token(field, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fieldErr(field, ErrEmpty, "is empty")
	}
	if err := validate.Var(s, fmt.Sprintf("len=%d,hexadecimal", TokenLen)); err != nil {
		return "", fieldErr(field, ErrInvalidToken, "is not a valid token")
	}
	return strings.ToLower(s), nil
}
