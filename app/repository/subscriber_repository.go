package repository

import (
	"github.com/LenaVoss/lenavoss-web/app/models"
	"gorm.io/gorm"
)

// subscriberRepository implements the SubscriberRepository interface
type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new subscriber repository instance
func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(sub *models.Subscriber) error {
	return r.db.Create(sub).Error
}

func (r *subscriberRepository) GetByEmail(email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := r.db.Where("email = ?", models.NormalizeEmail(email)).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriberRepository) GetByToken(token string) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := r.db.Where("unsubscribe_token = ?", token).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriberRepository) GetByID(id uint) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := r.db.First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriberRepository) Update(sub *models.Subscriber) error {
	return r.db.Save(sub).Error
}

func (r *subscriberRepository) Delete(id uint) error {
	return r.db.Delete(&models.Subscriber{}, id).Error
}

func (r *subscriberRepository) List(offset, limit int) ([]models.Subscriber, error) {
	var subs []models.Subscriber
	err := r.db.Order("joined_at DESC").Offset(offset).Limit(limit).Find(&subs).Error
	return subs, err
}

func (r *subscriberRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscriber{}).Count(&count).Error
	return count, err
}

// ListActiveWithAlerts returns the recipient set for event notifications.
func (r *subscriberRepository) ListActiveWithAlerts() ([]models.Subscriber, error) {
	var subs []models.Subscriber
	err := r.db.Where("is_active = ? AND receive_event_alerts = ?", true, true).Find(&subs).Error
	return subs, err
}

func (r *subscriberRepository) ExistsActiveByIP(ip string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscriber{}).
		Where("ip_address = ? AND is_active = ?", ip, true).
		Count(&count).Error
	return count > 0, err
}
