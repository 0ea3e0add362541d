package repositories

import (
	"psfinder_backend/internal/models"

	"gorm.io/gorm"
)

// CategoryCount is one row of the category distribution query.
type CategoryCount struct {
	Category string
	Count    int64
}

type AnalyticsRepository interface {
	CategoryCounts(db *gorm.DB) ([]CategoryCount, error)
}

type analyticsRepository struct{}

func NewAnalyticsRepository() AnalyticsRepository {
	return &analyticsRepository{}
}

// CategoryCounts groups stored problems by category. Records without a
// category land in the "uncategorized" bucket.
func (r *analyticsRepository) CategoryCounts(db *gorm.DB) ([]CategoryCount, error) {
	var counts []CategoryCount
	err := db.Model(&models.ProblemRecord{}).
		Select("COALESCE(NULLIF(category, ''), 'uncategorized') AS category, COUNT(*) AS count").
		Group("COALESCE(NULLIF(category, ''), 'uncategorized')").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}
