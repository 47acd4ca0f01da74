package repository

import (
	"time"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"gorm.io/gorm"
)

// visitorLogRepository implements the VisitorLogRepository interface
type visitorLogRepository struct {
	db *gorm.DB
}

// NewVisitorLogRepository creates a new visitor log repository instance
func NewVisitorLogRepository(db *gorm.DB) VisitorLogRepository {
	return &visitorLogRepository{db: db}
}

func (r *visitorLogRepository) Create(entry *models.VisitorLog) error {
	return r.db.Create(entry).Error
}

func (r *visitorLogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.VisitorLog{}).Count(&count).Error
	return count, err
}

func (r *visitorLogRepository) List(offset, limit int) ([]models.VisitorLog, error) {
	var entries []models.VisitorLog
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, err
}

// DistinctVisitorStats groups the append-only log by hash and location.
// Distinct visitors are derived here at query time, not stored.
func (r *visitorLogRepository) DistinctVisitorStats(start, end time.Time) ([]VisitorStat, error) {
	var stats []VisitorStat
	err := r.db.Model(&models.VisitorLog{}).
		Select("country, city, country_code, COUNT(DISTINCT visitor_hash) AS visitors, COUNT(*) AS visits").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("country, city, country_code").
		Order("visitors DESC").
		Scan(&stats).Error
	return stats, err
}
