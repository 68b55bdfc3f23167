package repositories

import (
	"errors"
	"time"

	"sportify-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned by every repository when the record does not exist.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	DB               *gorm.DB
	UserRepo         UserRepository
	TournamentRepo   TournamentRepository
	RegistrationRepo RegistrationRepository
	SponsorshipRepo  SponsorshipRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:               db,
		UserRepo:         NewUserRepository(db),
		TournamentRepo:   NewTournamentRepository(db),
		RegistrationRepo: NewRegistrationRepository(db),
		SponsorshipRepo:  NewSponsorshipRepository(db),
	}
}

func AutoMigrate(db *gorm.DB) error {
	// Enable UUID extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.OrganizerProfile{},
		&models.PlayerProfile{},
		&models.SponsorProfile{},
		&models.Tournament{},
		&models.Registration{},
		&models.Sponsorship{},
	)
}

// Interface definitions
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uuid.UUID) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	IncrementTournamentsOrganized(userID uuid.UUID) error
}

type TournamentRepository interface {
	CreateTournament(tournament *models.Tournament) error
	GetTournamentByID(id uuid.UUID) (*models.Tournament, error)
	GetTournamentWithOrganizer(id uuid.UUID) (*models.Tournament, error)
	ListTournaments(filters TournamentFilters) ([]models.Tournament, error)
	ListTournamentsByOrganizer(organizerID uuid.UUID) ([]models.Tournament, error)
	UpdateTournament(tournament *models.Tournament) error
	DeleteTournament(id uuid.UUID) error
	IncrementParticipants(id uuid.UUID, by int) error
	CloseExpiredTournaments(now time.Time) (int64, error)
}

type RegistrationRepository interface {
	CreateRegistration(registration *models.Registration) error
	GetRegistrationByID(id uuid.UUID) (*models.Registration, error)
	FindByTournamentAndPlayer(tournamentID, playerID uuid.UUID) (*models.Registration, error)
	ListByPlayer(playerID uuid.UUID) ([]models.Registration, error)
	ListByTournament(tournamentID uuid.UUID) ([]models.Registration, error)
	UpdateRegistration(registration *models.Registration) error
}

type SponsorshipRepository interface {
	CreateSponsorship(sponsorship *models.Sponsorship) error
	GetSponsorshipByID(id uuid.UUID) (*models.Sponsorship, error)
	ListBySponsor(sponsorID uuid.UUID) ([]models.Sponsorship, error)
	ListByOrganizer(organizerID uuid.UUID) ([]models.Sponsorship, error)
	UpdateSponsorship(sponsorship *models.Sponsorship) error
}

type TournamentFilters struct {
	City   string
	State  string
	Sport  string
	Status string
	Near   *GeoFilter
}

// GeoFilter restricts results to tournaments within RadiusMeters of a point.
type GeoFilter struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}
