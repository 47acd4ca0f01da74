package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a merch item shown on the shop page.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	PriceCents  int64          `gorm:"not null;default:0" json:"price_cents"`
	Currency    string         `gorm:"type:varchar(3);default:'EUR'" json:"currency"`
	ShopURL     string         `gorm:"type:varchar(512)" json:"shop_url"`
	ImagePath   string         `gorm:"type:varchar(512)" json:"image_path"`
	IsActive    bool           `gorm:"type:tinyint(1);default:1;index" json:"is_active"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
