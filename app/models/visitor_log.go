package models

import "time"

// VisitorLog is an append-only page visit record. Only the one-way hash
// of the client address is stored, never the address itself. The
// subscriber/messaged flags are a snapshot taken at visit time and are
// never updated afterwards.
type VisitorLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	VisitorHash  string    `gorm:"type:char(64);not null;index" json:"visitor_hash"`
	Country      *string   `gorm:"type:varchar(100);default:null" json:"country"`
	City         *string   `gorm:"type:varchar(100);default:null" json:"city"`
	CountryCode  *string   `gorm:"type:varchar(2);default:null" json:"country_code"`
	UserAgent    string    `gorm:"type:varchar(512)" json:"user_agent"`
	IsSubscriber bool      `gorm:"type:tinyint(1);default:0" json:"is_subscriber"`
	HasMessaged  bool      `gorm:"type:tinyint(1);default:0" json:"has_messaged"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (VisitorLog) TableName() string {
	return "visitor_logs"
}
