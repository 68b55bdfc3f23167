package repositories

import (
	"sportify-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) withProfiles() *gorm.DB {
	return r.db.Preload("OrganizerProfile").Preload("PlayerProfile").Preload("SponsorProfile")
}

func (r *userRepo) CreateUser(user *models.User) error {
	return translate(r.db.Create(user).Error, "create user")
}

func (r *userRepo) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.withProfiles().Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

func (r *userRepo) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.withProfiles().Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "get user by email")
	}
	return &user, nil
}

func (r *userRepo) UpdateUser(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("OrganizerProfile", "PlayerProfile", "SponsorProfile").Save(user).Error; err != nil {
			return translate(err, "update user")
		}
		if p := user.Profile(); p != nil {
			if err := tx.Save(p).Error; err != nil {
				return translate(err, "update profile")
			}
		}
		return nil
	})
}

func (r *userRepo) IncrementTournamentsOrganized(userID uuid.UUID) error {
	err := r.db.Model(&models.OrganizerProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("tournaments_organized", gorm.Expr("tournaments_organized + ?", 1)).Error
	return translate(err, "increment tournaments organized")
}
