package models

import "time"

// Message is a contact form submission. Name, email and body are fixed at
// creation; only the admin read/reply flags are mutated afterwards.
type Message struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(150);not null" json:"name"`
	Email       string     `gorm:"type:varchar(255);not null;index" json:"email"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Country     *string    `gorm:"type:varchar(100);default:null" json:"country"`
	City        *string    `gorm:"type:varchar(100);default:null" json:"city"`
	CountryCode *string    `gorm:"type:varchar(2);default:null" json:"country_code"`
	IPAddress   *string    `gorm:"type:varchar(45);default:null" json:"-"`
	IsRead      bool       `gorm:"type:tinyint(1);default:0" json:"is_read"`
	Replied     bool       `gorm:"type:tinyint(1);default:0" json:"replied"`
	RepliedAt   *time.Time `gorm:"type:timestamp;default:null" json:"replied_at"`
	ReplyText   *string    `gorm:"type:text;default:null" json:"reply_text"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Message) TableName() string {
	return "messages"
}
