package repository

import (
	"time"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"gorm.io/gorm"
)

// eventRepository implements the EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository instance
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

func (r *eventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}

func (r *eventRepository) List(offset, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Order("date DESC").Offset(offset).Limit(limit).Find(&events).Error
	return events, err
}

func (r *eventRepository) ListActive() ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("is_active = ?", true).Order("date ASC").Find(&events).Error
	return events, err
}

func (r *eventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Count(&count).Error
	return count, err
}

func (r *eventRepository) ReminderCandidates(start, end time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.
		Where("is_active = ? AND is_sold_out = ? AND auto_reminder = ?", true, false, true).
		Where("date >= ? AND date < ?", start, end).
		Find(&events).Error
	return events, err
}
