package handlers

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// idParam parses the :id route parameter.
func idParam(c *fiber.Ctx, field string) (identity.ID, error) {
	return validation.Identifier(field, c.Params("id"))
}

func intQuery(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &validation.FieldError{Field: field, Err: validation.ErrOutOfRange, Msg: field + " must be an integer"}
	}
	return n, nil
}

// optionalString turns a missing JSON value into a nil interface, not a
// typed nil pointer.
func optionalString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
