package repositories

import (
	"errors"

	"psfinder_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProblemNotFound = errors.New("problem not found")

type ProblemRepository interface {
	CreateBatch(db *gorm.DB, problems []*models.ProblemRecord) error
	FindByID(db *gorm.DB, id string) (*models.ProblemRecord, error)
	FindByBatch(db *gorm.DB, batchID string) ([]models.ProblemRecord, error)
	FindAll(db *gorm.DB, limit, offset int) ([]models.ProblemRecord, error)
	LatestBatchID(db *gorm.DB) (string, error)
	CountAll(db *gorm.DB) (int64, error)
	CountBatches(db *gorm.DB) (int64, error)
}

type problemRepository struct{}

func NewProblemRepository() ProblemRepository {
	return &problemRepository{}
}

// CreateBatch inserts a whole upload in one transaction so a batch is
// either fully stored or not at all.
func (r *problemRepository) CreateBatch(db *gorm.DB, problems []*models.ProblemRecord) error {
	if len(problems) == 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(problems).Error
	})
}

func (r *problemRepository) FindByID(db *gorm.DB, id string) (*models.ProblemRecord, error) {
	var problem models.ProblemRecord
	err := db.First(&problem, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProblemNotFound
		}
		return nil, err
	}
	return &problem, nil
}

func (r *problemRepository) FindByBatch(db *gorm.DB, batchID string) ([]models.ProblemRecord, error) {
	var problems []models.ProblemRecord
	err := db.Where("batch_id = ?", batchID).Order("row_index ASC").Find(&problems).Error
	return problems, err
}

func (r *problemRepository) FindAll(db *gorm.DB, limit, offset int) ([]models.ProblemRecord, error) {
	var problems []models.ProblemRecord
	err := db.Order("created_at DESC, row_index ASC").Limit(limit).Offset(offset).Find(&problems).Error
	return problems, err
}

func (r *problemRepository) LatestBatchID(db *gorm.DB) (string, error) {
	var problem models.ProblemRecord
	err := db.Order("created_at DESC").First(&problem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return problem.BatchID, nil
}

func (r *problemRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.ProblemRecord{}).Count(&count).Error
	return count, err
}

func (r *problemRepository) CountBatches(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.ProblemRecord{}).Distinct("batch_id").Count(&count).Error
	return count, err
}
