package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KDAtkins/infrastructure/internal/config"
	"github.com/KDAtkins/infrastructure/internal/database"
	"github.com/KDAtkins/infrastructure/internal/logging"
	"github.com/KDAtkins/infrastructure/internal/middleware"
	"github.com/KDAtkins/infrastructure/internal/repositories"
	"github.com/KDAtkins/infrastructure/internal/routes"
	"github.com/KDAtkins/infrastructure/internal/services"
	"github.com/KDAtkins/infrastructure/pkg/media"
	"github.com/KDAtkins/infrastructure/pkg/password"
	"github.com/KDAtkins/infrastructure/pkg/rabbitmq"
	"github.com/KDAtkins/infrastructure/pkg/redisstore"

	"github.com/gofiber/fiber/v2"
	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := &cli.App{
		Name:   "infrastructure",
		Usage:  "citizen infrastructure reports and admin triage",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database tables and exit",
				Action: migrate,
			},
		},
	}
	return app.Run(args)
}

func migrate(cctx *cli.Context) error {
	cfg := config.Load()
	logger, err := logging.Setup(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	zap.L().Info("migration complete")
	return nil
}

func serve(cctx *cli.Context) error {
	// --- Configuration ---
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.Setup(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// --- Database ---
	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	// --- Session storage ---
	var storage fiber.Storage
	if cfg.Session.Backend == "redis" {
		rs, err := redisstore.New(redisstore.Config{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		if err != nil {
			return err
		}
		defer rs.Close()
		storage = rs
	}
	sessions := middleware.NewSessionStore(storage, cfg.SessionTTL, cfg.CookieSecure)

	// --- Optional collaborators ---
	var events services.EventPublisher
	if cfg.Events.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.Events.RabbitMQURL, Exchange: cfg.Events.Exchange})
		if err != nil {
			return err
		}
		defer mq.Close()
		events = mq
	}

	var mediaHost services.MediaHost
	if cfg.Media.Endpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mc, err := media.New(ctx, media.Config{
			Endpoint:  cfg.Media.Endpoint,
			AccessKey: cfg.Media.AccessKey,
			SecretKey: cfg.Media.SecretKey,
			Bucket:    cfg.Media.Bucket,
			Region:    cfg.Media.Region,
			UseSSL:    cfg.Media.UseSSL,
			URLTTL:    cfg.Media.URLTTL,
		})
		cancel()
		if err != nil {
			return err
		}
		mediaHost = mc
	}

	// --- Repositories ---
	profileRepo := repositories.NewGORMProfileRepository(db)
	reportRepo := repositories.NewGORMReportRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)
	imageRepo := repositories.NewGORMImageRepository(db)

	// --- Services ---
	authService, err := services.NewAuthService(profileRepo, password.Default, cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return err
	}
	profileService := services.NewProfileService(profileRepo, password.Default, events)
	reportService := services.NewReportService(reportRepo, events)
	commentService := services.NewCommentService(commentRepo, reportRepo)
	imageService := services.NewImageService(imageRepo, reportRepo, mediaHost)

	// --- Fiber App ---
	app := routes.NewApp(routes.Dependencies{
		DB:           db,
		Sessions:     sessions,
		Auth:         authService,
		Profiles:     profileService,
		Reports:      reportService,
		Comments:     commentService,
		Images:       imageService,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
		RequestLog:   true,
	})

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.String("addr", cfg.AppPort))
		serverErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	zap.L().Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zap.L().Error("error during shutdown", zap.Error(err))
	}
	zap.L().Info("server gracefully stopped")
	return nil
}
