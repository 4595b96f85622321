package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/fiber/v2/utils"
)

// Session keys of the signed-in profile.
const (
	SessionProfileID       = "profileId"
	SessionProfileUsername = "profileUsername"
)

const SessionCookie = "session_id"

// NewSessionStore builds the server-side session store. A nil storage keeps
// sessions in process memory.
func NewSessionStore(storage fiber.Storage, ttl time.Duration, secure bool) *session.Store {
	return session.New(session.Config{
		Expiration:     ttl,
		Storage:        storage,
		KeyLookup:      "cookie:" + SessionCookie,
		CookieSecure:   secure,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		KeyGenerator:   utils.UUIDv4,
	})
}
