package repositories

import (
	"errors"
	"time"

	"sportify-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tournamentRepo struct {
	db *gorm.DB
}

func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &tournamentRepo{db: db}
}

// CreateTournament creates a new tournament
func (r *tournamentRepo) CreateTournament(tournament *models.Tournament) error {
	if tournament == nil {
		return errors.New("tournament cannot be nil")
	}
	return translate(r.db.Omit(clause.Associations).Create(tournament).Error, "create tournament")
}

// GetTournamentByID retrieves a tournament without relations
func (r *tournamentRepo) GetTournamentByID(id uuid.UUID) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := r.db.Where("id = ?", id).First(&tournament).Error; err != nil {
		return nil, translate(err, "get tournament")
	}
	return &tournament, nil
}

// GetTournamentWithOrganizer retrieves a tournament with the organizer summary joined in
func (r *tournamentRepo) GetTournamentWithOrganizer(id uuid.UUID) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := r.db.Preload("Organizer", userSummary).
		Where("id = ?", id).
		First(&tournament).Error; err != nil {
		return nil, translate(err, "get tournament")
	}
	return &tournament, nil
}

// ListTournaments applies the discovery filters and sorts by start date
func (r *tournamentRepo) ListTournaments(filters TournamentFilters) ([]models.Tournament, error) {
	query := r.db.Model(&models.Tournament{}).Preload("Organizer", userSummary)

	if filters.City != "" {
		query = query.Where("city ILIKE ?", containsPattern(filters.City))
	}
	if filters.State != "" {
		query = query.Where("state ILIKE ?", containsPattern(filters.State))
	}
	if filters.Sport != "" {
		query = query.Where("sport ILIKE ?", containsPattern(filters.Sport))
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if near := filters.Near; near != nil {
		query = query.
			Where("latitude IS NOT NULL AND longitude IS NOT NULL").
			Where(distanceSQL+" <= ?",
				earthRadiusMeters, near.Latitude, near.Longitude, near.Latitude, near.RadiusMeters)
	}

	var tournaments []models.Tournament
	if err := query.Order("start_date ASC").Find(&tournaments).Error; err != nil {
		return nil, translate(err, "list tournaments")
	}
	return tournaments, nil
}

func (r *tournamentRepo) ListTournamentsByOrganizer(organizerID uuid.UUID) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	if err := r.db.Where("organizer_id = ?", organizerID).
		Order("start_date ASC").
		Find(&tournaments).Error; err != nil {
		return nil, translate(err, "list organizer tournaments")
	}
	return tournaments, nil
}

func (r *tournamentRepo) UpdateTournament(tournament *models.Tournament) error {
	return translate(r.db.Omit(clause.Associations).Save(tournament).Error, "update tournament")
}

func (r *tournamentRepo) DeleteTournament(id uuid.UUID) error {
	result := r.db.Delete(&models.Tournament{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "delete tournament")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementParticipants adds to the stored count atomically. It does not
// re-check capacity.
func (r *tournamentRepo) IncrementParticipants(id uuid.UUID, by int) error {
	err := r.db.Model(&models.Tournament{}).
		Where("id = ?", id).
		UpdateColumn("current_participants", gorm.Expr("current_participants + ?", by)).Error
	return translate(err, "increment participants")
}

// CloseExpiredTournaments moves open tournaments past their deadline to closed
func (r *tournamentRepo) CloseExpiredTournaments(now time.Time) (int64, error) {
	result := r.db.Model(&models.Tournament{}).
		Where("status = ? AND registration_deadline < ?", models.TournamentOpen, now).
		Update("status", models.TournamentClosed)
	if result.Error != nil {
		return 0, translate(result.Error, "close expired tournaments")
	}
	return result.RowsAffected, nil
}
