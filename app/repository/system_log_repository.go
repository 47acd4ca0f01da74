package repository

import (
	"time"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"gorm.io/gorm"
)

// systemLogRepository implements the SystemLogRepository interface
type systemLogRepository struct {
	db *gorm.DB
}

// NewSystemLogRepository creates a new system log repository instance
func NewSystemLogRepository(db *gorm.DB) SystemLogRepository {
	return &systemLogRepository{db: db}
}

func (r *systemLogRepository) Create(entry *models.SystemLog) error {
	return r.db.Create(entry).Error
}

func (r *systemLogRepository) List(filter LogFilter) ([]models.SystemLog, int64, error) {
	query := r.db.Model(&models.SystemLog{})

	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.ActionContains != "" {
		query = query.Where("action LIKE ?", "%"+filter.ActionContains+"%")
	}
	if filter.UserContains != "" {
		query = query.Where("username LIKE ?", "%"+filter.UserContains+"%")
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var entries []models.SystemLog
	err := query.Order("created_at DESC").Offset(filter.Offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}

func (r *systemLogRepository) CountByLevel() (map[string]int64, error) {
	type levelCount struct {
		Level string
		Count int64
	}
	var rows []levelCount
	err := r.db.Model(&models.SystemLog{}).
		Select("level, COUNT(*) AS count").
		Group("level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Level] = row.Count
	}
	return counts, nil
}

func (r *systemLogRepository) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

func (r *systemLogRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
