package repositories

import (
	"sportify-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sponsorshipRepo struct {
	db *gorm.DB
}

func NewSponsorshipRepository(db *gorm.DB) SponsorshipRepository {
	return &sponsorshipRepo{db: db}
}

func (r *sponsorshipRepo) CreateSponsorship(sponsorship *models.Sponsorship) error {
	return translate(r.db.Omit(clause.Associations).Create(sponsorship).Error, "create sponsorship")
}

func (r *sponsorshipRepo) GetSponsorshipByID(id uuid.UUID) (*models.Sponsorship, error) {
	var sponsorship models.Sponsorship
	if err := r.db.
		Preload("Tournament").
		Preload("Sponsor", userSummary).
		Where("id = ?", id).
		First(&sponsorship).Error; err != nil {
		return nil, translate(err, "get sponsorship")
	}
	return &sponsorship, nil
}

func (r *sponsorshipRepo) ListBySponsor(sponsorID uuid.UUID) ([]models.Sponsorship, error) {
	var sponsorships []models.Sponsorship
	if err := r.db.
		Preload("Tournament").
		Preload("Tournament.Organizer", userSummary).
		Where("sponsor_id = ?", sponsorID).
		Order("created_at DESC").
		Find(&sponsorships).Error; err != nil {
		return nil, translate(err, "list sponsor sponsorships")
	}
	return sponsorships, nil
}

// ListByOrganizer returns sponsorships for every tournament the organizer owns
func (r *sponsorshipRepo) ListByOrganizer(organizerID uuid.UUID) ([]models.Sponsorship, error) {
	owned := r.db.Model(&models.Tournament{}).Select("id").Where("organizer_id = ?", organizerID)

	var sponsorships []models.Sponsorship
	if err := r.db.
		Preload("Tournament").
		Preload("Sponsor", userSummary).
		Where("tournament_id IN (?)", owned).
		Order("created_at DESC").
		Find(&sponsorships).Error; err != nil {
		return nil, translate(err, "list organizer sponsorships")
	}
	return sponsorships, nil
}

func (r *sponsorshipRepo) UpdateSponsorship(sponsorship *models.Sponsorship) error {
	return translate(r.db.Omit(clause.Associations).Save(sponsorship).Error, "update sponsorship")
}
