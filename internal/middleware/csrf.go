package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const (
	CSRFCookie     = "XSRF-TOKEN"
	CSRFHeader     = "X-XSRF-TOKEN"
	CSRFContextKey = "csrf"
)

// CSRF requires every unsafe request to echo the XSRF-TOKEN cookie in the
// X-XSRF-TOKEN header. Tokens live in the server-side session, so a token is
// only good for the session it was minted in. Rejection happens before any
// body is parsed.
func CSRF(store *session.Store, ttl time.Duration, secure bool) fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "header:" + CSRFHeader,
		CookieName:     CSRFCookie,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieSecure:   secure,
		// scripts must read the cookie to echo it
		CookieHTTPOnly: false,
		Expiration:     ttl,
		Session:        store,
		ContextKey:     CSRFContextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			zap.L().Info("anti-forgery check failed",
				zap.String("path", c.Path()), zap.String("request_id", RequestID(c)), zap.Error(err))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  fiber.StatusForbidden,
				"message": "Anti-forgery token is missing or invalid.",
			})
		},
	})
}

// CSRFToken returns the token the CSRF middleware attached to the request.
func CSRFToken(c *fiber.Ctx) string {
	token, _ := c.Locals(CSRFContextKey).(string)
	return token
}
