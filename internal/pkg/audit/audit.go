package audit

import (
	"fmt"
	"log"
	"time"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
)

// Action is the closed set of auditable admin operations.
type Action string

const (
	ActionLogin            Action = "auth.login"
	ActionLoginFailed      Action = "auth.login_failed"
	ActionLogout           Action = "auth.logout"
	ActionEventCreate      Action = "event.create"
	ActionEventUpdate      Action = "event.update"
	ActionEventDelete      Action = "event.delete"
	ActionEventAnnounce    Action = "event.announce"
	ActionProductCreate    Action = "product.create"
	ActionProductUpdate    Action = "product.update"
	ActionProductDelete    Action = "product.delete"
	ActionGalleryUpload    Action = "gallery.upload"
	ActionGalleryUpdate    Action = "gallery.update"
	ActionGalleryDelete    Action = "gallery.delete"
	ActionMessageRead      Action = "message.read"
	ActionMessageReply     Action = "message.reply"
	ActionMessageDelete    Action = "message.delete"
	ActionSubscriberDelete Action = "subscriber.delete"
	ActionSubscriberExport Action = "subscriber.export"
	ActionSettingsUpdate   Action = "settings.update"
	ActionLogsClear        Action = "logs.clear"
)

// Option tweaks a single audit record.
type Option func(*models.SystemLog)

func WithLevel(level string) Option {
	return func(e *models.SystemLog) { e.Level = level }
}

func WithActor(id uint) Option {
	return func(e *models.SystemLog) { e.ActorID = &id }
}

func WithRequest(ip, userAgent string) Option {
	return func(e *models.SystemLog) {
		if ip != "" {
			e.IPAddress = &ip
		}
		if userAgent != "" {
			if len(userAgent) > 512 {
				userAgent = userAgent[:512]
			}
			e.UserAgent = &userAgent
		}
	}
}

// Logger appends audit records. Record swallows every internal error:
// audit logging is metadata, it must never fail the request that
// triggered it.
type Logger struct {
	repo repository.SystemLogRepository
}

func NewLogger(repo repository.SystemLogRepository) *Logger {
	return &Logger{repo: repo}
}

// Record appends one entry. Defaults to INFO when no level option is given.
func (l *Logger) Record(username string, action Action, details string, opts ...Option) {
	entry := &models.SystemLog{
		Level:    models.LOG_LEVEL_INFO,
		Action:   string(action),
		Username: username,
		Details:  details,
	}
	for _, opt := range opts {
		opt(entry)
	}

	if err := l.repo.Create(entry); err != nil {
		log.Printf("audit record failed (%s %s): %v", username, action, err)
	}
}

// List returns a filtered page of audit entries plus the total match count.
func (l *Logger) List(filter repository.LogFilter) ([]models.SystemLog, int64, error) {
	return l.repo.List(filter)
}

// CountByLevel returns the aggregate entry count per severity.
func (l *Logger) CountByLevel() (map[string]int64, error) {
	return l.repo.CountByLevel()
}

// ClearAll wipes the log, then records the wipe so the clearing action
// survives its own clear.
func (l *Logger) ClearAll(username string) (int64, error) {
	deleted, err := l.repo.DeleteAll()
	if err != nil {
		return 0, err
	}
	l.Record(username, ActionLogsClear, fmt.Sprintf("cleared all system logs (%d entries)", deleted),
		WithLevel(models.LOG_LEVEL_WARN))
	return deleted, nil
}

// ClearOlderThan deletes entries older than the given age in days and
// records the deletion afterwards.
func (l *Logger) ClearOlderThan(username string, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := l.repo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	l.Record(username, ActionLogsClear, fmt.Sprintf("cleared system logs older than %d days (%d entries)", days, deleted),
		WithLevel(models.LOG_LEVEL_WARN))
	return deleted, nil
}
