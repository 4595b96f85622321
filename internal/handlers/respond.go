package handlers

import (
	"errors"
	"fmt"

	"github.com/KDAtkins/infrastructure/internal/metrics"
	"github.com/KDAtkins/infrastructure/internal/middleware"
	"github.com/KDAtkins/infrastructure/internal/repositories"
	"github.com/KDAtkins/infrastructure/internal/services"
	"github.com/KDAtkins/infrastructure/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	msgBadCredentials = "Password or email is incorrect."
	msgInternal       = "An internal error occurred."
)

func respond(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{
		"status":  status,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// respondError maps an error kind to a status and a message that is safe to
// show. Anything unrecognised is logged and reported as a bare 500.
func respondError(c *fiber.Ctx, err error) error {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  fiber.StatusBadRequest,
			"message": fieldErr.Msg,
			"errors":  fiber.Map{fieldErr.Field: fieldErr.Msg},
		})
	case errors.Is(err, services.ErrPasswordMismatch):
		return respond(c, fiber.StatusBadRequest, "Passwords do not match.", nil)
	case errors.Is(err, services.ErrWeakPassword):
		return respond(c, fiber.StatusBadRequest,
			fmt.Sprintf("Password must be at least %d characters.", services.MinPasswordLen), nil)
	case errors.Is(err, repositories.ErrInvalidRange):
		return respond(c, fiber.StatusBadRequest, "The start of the range must not be after its end.", nil)
	case errors.Is(err, services.ErrAccountNotFound), errors.Is(err, services.ErrInvalidCredentials):
		return respond(c, fiber.StatusUnauthorized, msgBadCredentials, nil)
	case errors.Is(err, services.ErrInvalidToken):
		return respond(c, fiber.StatusUnauthorized, "Invalid or expired token.", nil)
	case errors.Is(err, services.ErrAccountNotActivated):
		return respond(c, fiber.StatusForbidden,
			"Please check your email and activate your account before signing in.", nil)
	case errors.Is(err, services.ErrWrongPassword):
		return respond(c, fiber.StatusForbidden, "Current password is incorrect.", nil)
	case errors.Is(err, services.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "You are not allowed to do this.", nil)
	case errors.Is(err, repositories.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "The requested record does not exist.", nil)
	case errors.Is(err, repositories.ErrAlreadyExists):
		return respond(c, fiber.StatusConflict, "That record already exists.", nil)
	}

	if errors.Is(err, repositories.ErrConnectionFailure) {
		metrics.StoreFailures.Inc()
	}
	zap.L().Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("request_id", middleware.RequestID(c)),
		zap.Error(err))
	return respond(c, fiber.StatusInternalServerError, msgInternal, nil)
}

func invalidBody(c *fiber.Ctx, err error) error {
	zap.L().Debug("invalid request body", zap.String("path", c.Path()), zap.Error(err))
	return respond(c, fiber.StatusBadRequest, "Invalid request body.", nil)
}

// validationFailed reports struct tag failures field by field.
func validationFailed(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  fiber.StatusBadRequest,
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// newValidator reports JSON field names instead of Go field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	return v
}
