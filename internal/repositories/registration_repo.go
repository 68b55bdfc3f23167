package repositories

import (
	"sportify-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type registrationRepo struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

// CreateRegistration inserts the record. A second registration for the same
// (tournament, player) pair fails on idx_registration_tournament_player.
func (r *registrationRepo) CreateRegistration(registration *models.Registration) error {
	return translate(r.db.Omit(clause.Associations).Create(registration).Error, "create registration")
}

// GetRegistrationByID loads the registration with its tournament and player
func (r *registrationRepo) GetRegistrationByID(id uuid.UUID) (*models.Registration, error) {
	var registration models.Registration
	if err := r.db.
		Preload("Tournament").
		Preload("Player", userSummary).
		Where("id = ?", id).
		First(&registration).Error; err != nil {
		return nil, translate(err, "get registration")
	}
	return &registration, nil
}

func (r *registrationRepo) FindByTournamentAndPlayer(tournamentID, playerID uuid.UUID) (*models.Registration, error) {
	var registration models.Registration
	if err := r.db.Where("tournament_id = ? AND player_id = ?", tournamentID, playerID).
		First(&registration).Error; err != nil {
		return nil, translate(err, "find registration")
	}
	return &registration, nil
}

func (r *registrationRepo) ListByPlayer(playerID uuid.UUID) ([]models.Registration, error) {
	var registrations []models.Registration
	if err := r.db.
		Preload("Tournament").
		Preload("Tournament.Organizer", userSummary).
		Where("player_id = ?", playerID).
		Order("registered_at DESC").
		Find(&registrations).Error; err != nil {
		return nil, translate(err, "list player registrations")
	}
	return registrations, nil
}

func (r *registrationRepo) ListByTournament(tournamentID uuid.UUID) ([]models.Registration, error) {
	var registrations []models.Registration
	if err := r.db.
		Preload("Player", userSummary).
		Where("tournament_id = ?", tournamentID).
		Order("registered_at DESC").
		Find(&registrations).Error; err != nil {
		return nil, translate(err, "list tournament registrations")
	}
	return registrations, nil
}

func (r *registrationRepo) UpdateRegistration(registration *models.Registration) error {
	return translate(r.db.Omit(clause.Associations).Save(registration).Error, "update registration")
}
