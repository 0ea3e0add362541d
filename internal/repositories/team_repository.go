package repositories

import (
	"errors"

	"psfinder_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	Create(db *gorm.DB, team *models.TeamProfile) error
	FindByID(db *gorm.DB, id string) (*models.TeamProfile, error)
	FindByOwner(db *gorm.DB, ownerID string) ([]models.TeamProfile, error)
	Update(db *gorm.DB, team *models.TeamProfile) error
	Delete(db *gorm.DB, id string) error
	CountAll(db *gorm.DB) (int64, error)
}

type teamRepository struct{}

func NewTeamRepository() TeamRepository {
	return &teamRepository{}
}

func (r *teamRepository) Create(db *gorm.DB, team *models.TeamProfile) error {
	return db.Create(team).Error
}

func (r *teamRepository) FindByID(db *gorm.DB, id string) (*models.TeamProfile, error) {
	var team models.TeamProfile
	err := db.First(&team, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindByOwner(db *gorm.DB, ownerID string) ([]models.TeamProfile, error) {
	var teams []models.TeamProfile
	err := db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&teams).Error
	return teams, err
}

func (r *teamRepository) Update(db *gorm.DB, team *models.TeamProfile) error {
	return db.Save(team).Error
}

func (r *teamRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.TeamProfile{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *teamRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.TeamProfile{}).Count(&count).Error
	return count, err
}
