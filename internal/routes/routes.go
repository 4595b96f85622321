package routes

import (
	"errors"
	"time"

	"github.com/KDAtkins/infrastructure/internal/database"
	"github.com/KDAtkins/infrastructure/internal/handlers"
	"github.com/KDAtkins/infrastructure/internal/metrics"
	"github.com/KDAtkins/infrastructure/internal/middleware"
	"github.com/KDAtkins/infrastructure/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies is everything the HTTP layer needs.
type Dependencies struct {
	DB       *gorm.DB
	Sessions *session.Store

	Auth     *services.AuthService
	Profiles *services.ProfileService
	Reports  *services.ReportService
	Comments *services.CommentService
	Images   *services.ImageService

	SessionTTL   time.Duration
	CookieSecure bool
	// RequestLog enables the per-request access log.
	RequestLog bool
}

// NewApp builds the Fiber app with its middleware stack and routes.
func NewApp(d Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "infrastructure",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if d.RequestLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.Ping(d.DB); err != nil {
			zap.L().Error("health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"time":     time.Now().UTC().Format(time.RFC3339),
				"database": "unreachable",
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().UTC().Format(time.RFC3339),
			"database": "connected",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// anti-forgery runs before any handler parses a body
	api := app.Group("/api", middleware.CSRF(d.Sessions, d.SessionTTL, d.CookieSecure))

	auth := middleware.AuthRequired(d.Auth, d.Sessions)
	admin := middleware.AdminRequired(d.Profiles)

	handlers.NewAuthHandler(d.Auth, d.Profiles, d.Sessions).RegisterRoutes(api)
	handlers.NewProfileHandler(d.Profiles).RegisterRoutes(api, auth)
	handlers.NewReportHandler(d.Reports).RegisterRoutes(api, auth, admin)
	handlers.NewCommentHandler(d.Comments, d.Profiles).RegisterRoutes(api, auth)
	handlers.NewImageHandler(d.Images).RegisterRoutes(api, auth, admin)

	return app
}

// errorHandler renders errors that escape the handlers, such as unknown
// routes, in the same JSON shape as handled ones.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal error occurred."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		zap.L().Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  code,
		"message": message,
	})
}
