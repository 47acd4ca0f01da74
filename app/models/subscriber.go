package models

import (
	"strings"
	"time"
)

// Subscriber is a newsletter signup. The email is unique; re-subscribing
// an existing address updates the row in place instead of duplicating it.
// The unsubscribe token is the only valid key for the public unsubscribe
// flow and stays stable across reactivations.
type Subscriber struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Email              string     `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	ReceiveEventAlerts bool       `gorm:"type:tinyint(1);default:1" json:"receive_event_alerts"`
	IsActive           bool       `gorm:"type:tinyint(1);default:1;index" json:"is_active"`
	UnsubscribeToken   string     `gorm:"uniqueIndex;type:varchar(64);not null" json:"-"`
	UnsubscribeReason  *string    `gorm:"type:text;default:null" json:"unsubscribe_reason"`
	UnsubscribedAt     *time.Time `gorm:"type:timestamp;default:null" json:"unsubscribed_at"`
	Country            *string    `gorm:"type:varchar(100);default:null" json:"country"`
	City               *string    `gorm:"type:varchar(100);default:null" json:"city"`
	CountryCode        *string    `gorm:"type:varchar(2);default:null" json:"country_code"`
	// Kept only for engagement cross-referencing, never re-geolocated.
	IPAddress *string   `gorm:"type:varchar(45);default:null" json:"-"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joined_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}

// NormalizeEmail lowercases and trims an address so lookups and the
// unique index agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
