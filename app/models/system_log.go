package models

import "time"

const (
	LOG_LEVEL_INFO  = "INFO"
	LOG_LEVEL_WARN  = "WARN"
	LOG_LEVEL_ERROR = "ERROR"
)

// SystemLog is an append-only audit record of admin actions. Rows are
// never mutated; the only deletion path is the bulk clear, which writes
// its own WARN entry afterwards.
type SystemLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Level     string    `gorm:"type:varchar(10);not null;index" json:"level"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Username  string    `gorm:"type:varchar(150);not null;index" json:"username"`
	Details   string    `gorm:"type:text" json:"details"`
	ActorID   *uint     `gorm:"default:null" json:"actor_id"`
	IPAddress *string   `gorm:"type:varchar(45);default:null" json:"ip_address"`
	UserAgent *string   `gorm:"type:varchar(512);default:null" json:"user_agent"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (SystemLog) TableName() string {
	return "system_logs"
}
