package main

import (
	"errors"
	"os"

	"sportify-backend/internal/config"
	"sportify-backend/internal/models"
	"sportify-backend/internal/repositories"
	"sportify-backend/internal/services"
	"sportify-backend/pkg/database"
	"sportify-backend/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Runs the schema migration and, when SEED_ORGANIZER_EMAIL and
// SEED_ORGANIZER_PASSWORD are set, creates that organizer account.
func main() {
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
	logrus.Info("database migrations completed")

	if err := seedOrganizer(repositories.NewRepository(db), cfg); err != nil {
		logrus.Fatalf("Failed to seed organizer: %v", err)
	}
}

func seedOrganizer(repo *repositories.Repository, cfg *config.Config) error {
	email := os.Getenv("SEED_ORGANIZER_EMAIL")
	password := os.Getenv("SEED_ORGANIZER_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	_, err := services.NewAuthService(repo, cfg).Register(services.RegisterRequest{
		Name:     "Sportify Organizer",
		Email:    email,
		Password: password,
		Phone:    os.Getenv("SEED_ORGANIZER_PHONE"),
		Role:     models.RoleOrganizer,
		ProfileInput: services.ProfileInput{
			OrganizationName: os.Getenv("SEED_ORGANIZATION_NAME"),
		},
	})
	if errors.Is(err, services.ErrEmailTaken) {
		logrus.WithField("email", email).Info("seed organizer already exists")
		return nil
	}
	if err != nil {
		return err
	}

	logrus.WithField("email", email).Info("seed organizer created")
	return nil
}
