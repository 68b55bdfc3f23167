package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sportify-backend/internal/config"
	"sportify-backend/internal/handlers"
	"sportify-backend/internal/middleware"
	"sportify-backend/internal/notify"
	"sportify-backend/internal/payment"
	"sportify-backend/internal/repositories"
	"sportify-backend/internal/services"
	"sportify-backend/internal/storage"
	"sportify-backend/pkg/database"
	"sportify-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Warnf(".env file not found: %v", err)
	}

	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		logrus.Fatalf("Config error: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Env)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logrus.Fatalf("Database connection error: %v", err)
	}

	if err := repositories.AutoMigrate(db); err != nil {
		logrus.Fatalf("Migration error: %v", err)
	}

	repo := repositories.NewRepository(db)

	// External collaborators, each built lazily on first use
	gateway := payment.NewRazorpay(cfg)
	mailer := notify.NewMailer(cfg)
	notifications := notify.NewQueue(mailer, cfg.NotifyQueueSize)
	uploader := storage.NewR2Uploader(storage.R2ConfigFrom(cfg))

	authSvc := services.NewAuthService(repo, cfg)
	tournamentSvc := services.NewTournamentService(repo, cfg)
	registrationSvc := services.NewRegistrationService(repo, gateway, notifications, cfg)
	verificationSvc := services.NewVerificationService(repo, notifications, cfg)
	sponsorshipSvc := services.NewSponsorshipService(repo)

	scheduler, err := tournamentSvc.StartDeadlineSweep(cfg.DeadlineSweepInterval)
	if err != nil {
		logrus.Fatalf("Scheduler error: %v", err)
	}

	handler := handlers.NewHandler(authSvc, tournamentSvc, registrationSvc, verificationSvc, sponsorshipSvc, uploader, cfg)

	app := fiber.New(fiber.Config{
		AppName:      "Sportify API",
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    int(cfg.MaxUploadSize) + 1<<20,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))

	api := app.Group("/api")
	handler.RegisterRoutes(api)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logrus.WithField("addr", addr).Info("server starting")
		if err := app.Listen(addr); err != nil {
			logrus.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Error("server shutdown error")
	}
	if err := scheduler.Shutdown(); err != nil {
		logrus.WithError(err).Error("scheduler shutdown error")
	}
	notifications.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logrus.Info("server stopped gracefully")
}
