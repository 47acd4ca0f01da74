package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Event is a concert or appearance. The sold-out flag together with
// AutoSoldOut drives the one-shot sold-out notification; AutoReminder
// opts the event into the 7-day reminder sweep.
type Event struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=3,max=255"`
	Description  string         `gorm:"type:text" json:"description"`
	Location     string         `gorm:"type:varchar(255)" json:"location" validate:"max=255"`
	Date         time.Time      `gorm:"not null;index" json:"date" validate:"required"`
	TicketURL    string         `gorm:"type:varchar(512)" json:"ticket_url" validate:"omitempty,url,max=512"`
	ImagePath    string         `gorm:"type:varchar(512)" json:"image_path"`
	IsSoldOut    bool           `gorm:"type:tinyint(1);default:0" json:"is_sold_out"`
	AutoSoldOut  bool           `gorm:"type:tinyint(1);default:1" json:"auto_sold_out"`
	AutoReminder bool           `gorm:"type:tinyint(1);default:1" json:"auto_reminder"`
	IsActive     bool           `gorm:"type:tinyint(1);default:1;index" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) Validate() error {
	v := validator.New()

	return v.Struct(e)
}
