package repository

import (
	"github.com/LenaVoss/lenavoss-web/app/models"
	"gorm.io/gorm"
)

// messageRepository implements the MessageRepository interface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository instance
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(msg *models.Message) error {
	return r.db.Create(msg).Error
}

func (r *messageRepository) GetByID(id uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.First(&msg, id).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) Update(msg *models.Message) error {
	return r.db.Save(msg).Error
}

func (r *messageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Message{}, id).Error
}

func (r *messageRepository) List(offset, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&msgs).Error
	return msgs, err
}

func (r *messageRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Count(&count).Error
	return count, err
}

func (r *messageRepository) CountUnread() (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

func (r *messageRepository) ExistsByIP(ip string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("ip_address = ?", ip).Count(&count).Error
	return count > 0, err
}
