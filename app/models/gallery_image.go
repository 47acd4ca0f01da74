package models

import (
	"time"

	"gorm.io/gorm"
)

// GalleryImage is a press/media photo managed from the admin area.
type GalleryImage struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"type:varchar(255)" json:"title"`
	Credit        string         `gorm:"type:varchar(255)" json:"credit"`
	ImagePath     string         `gorm:"type:varchar(512);not null" json:"image_path"`
	ThumbnailPath string         `gorm:"type:varchar(512)" json:"thumbnail_path"`
	IsPressKit    bool           `gorm:"type:tinyint(1);default:0" json:"is_press_kit"`
	SortOrder     int            `gorm:"default:0" json:"sort_order"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (GalleryImage) TableName() string {
	return "gallery_images"
}
