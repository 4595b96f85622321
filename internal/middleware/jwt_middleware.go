package middleware

import (
	"errors"
	"strings"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/repositories"
	"github.com/KDAtkins/infrastructure/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const JWTHeader = "X-JWT-TOKEN"

// Locals set by AuthRequired and AdminRequired.
const (
	LocalProfileID = "profileId"
	LocalUsername  = "profileUsername"
	LocalIsAdmin   = "profileIsAdmin"
)

// AuthRequired accepts a request only when its signed token is valid and
// names the same profile and session as the server-side session record.
func AuthRequired(authService *services.AuthService, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return unauthorized(c, "You must be signed in to do this.")
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			return unauthorized(c, "Invalid or expired token.")
		}

		sess, err := store.Get(c)
		if err != nil {
			zap.L().Error("failed to load session", zap.String("request_id", RequestID(c)), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  fiber.StatusInternalServerError,
				"message": "An internal error occurred.",
			})
		}
		sessionProfile, _ := sess.Get(SessionProfileID).(string)
		if sess.Fresh() || sess.ID() != claims.SessionID || sessionProfile != claims.ProfileID.String() {
			return unauthorized(c, "Your session has expired. Please sign in again.")
		}

		c.Locals(LocalProfileID, claims.ProfileID)
		c.Locals(LocalUsername, claims.Username)
		return c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired(profileService *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := ProfileID(c)
		if !ok {
			return unauthorized(c, "You must be signed in to do this.")
		}
		profile, err := profileService.GetProfile(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return unauthorized(c, "You must be signed in to do this.")
			}
			zap.L().Error("failed to load profile", zap.String("request_id", RequestID(c)), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  fiber.StatusInternalServerError,
				"message": "An internal error occurred.",
			})
		}
		if !profile.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  fiber.StatusForbidden,
				"message": "You are not allowed to do this.",
			})
		}
		c.Locals(LocalIsAdmin, true)
		return c.Next()
	}
}

// ProfileID returns the signed-in profile set by AuthRequired.
func ProfileID(c *fiber.Ctx) (identity.ID, bool) {
	id, ok := c.Locals(LocalProfileID).(identity.ID)
	return id, ok
}

func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}

// bearerToken reads "Authorization: Bearer <token>", falling back to the
// X-JWT-TOKEN header.
func bearerToken(c *fiber.Ctx) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(c.Get(JWTHeader))
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":  fiber.StatusUnauthorized,
		"message": message,
	})
}
