package models

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Setting is a single key/value row in the settings table
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// AppSettings is the in-memory view of the settings table. The
// notification templates use {{ token }} placeholders that are rendered
// by the notify package; the signature block is appended to every
// outbound mail including manual replies.
type AppSettings struct {
	SiteTitle           string `json:"site_title" validate:"required,min=1,max=255"`
	PublicBaseURL       string `json:"public_base_url" validate:"required,url"`
	MailSender          string `json:"mail_sender" validate:"required,email"`
	ReminderSubject     string `json:"reminder_subject" validate:"required,max=255"`
	ReminderTemplate    string `json:"reminder_template" validate:"required"`
	SoldOutSubject      string `json:"sold_out_subject" validate:"required,max=255"`
	SoldOutTemplate     string `json:"sold_out_template" validate:"required"`
	AnnounceSubject     string `json:"announce_subject" validate:"required,max=255"`
	AnnounceTemplate    string `json:"announce_template" validate:"required"`
	SignatureHTML       string `json:"signature_html"`
	SignatureLogoURL    string `json:"signature_logo_url" validate:"omitempty,url"`
	VisitTrackingActive bool   `json:"visit_tracking_active"`
}

var (
	appSettings *AppSettings
	settingsMu  sync.RWMutex
)

// DefaultSettings returns the settings used before anything is stored.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		SiteTitle:           "Lena Voss",
		PublicBaseURL:       "https://lenavoss.example",
		MailSender:          "no-reply@lenavoss.example",
		ReminderSubject:     "Reminder: {{ event_title }} in one week",
		ReminderTemplate:    "<p>Hi,</p><p>{{ event_title }} takes place on {{ event_date }} at {{ event_location }}. See you there!</p>",
		SoldOutSubject:      "{{ event_title }} is sold out",
		SoldOutTemplate:     "<p>{{ event_title }} on {{ event_date }} is now sold out. Thank you!</p>",
		AnnounceSubject:     "New show: {{ event_title }}",
		AnnounceTemplate:    "<p>{{ event_title }} — {{ event_date }}, {{ event_location }}.</p>",
		SignatureHTML:       "",
		SignatureLogoURL:    "",
		VisitTrackingActive: true,
	}
}

// GetAppSettings returns the current application settings
func GetAppSettings() *AppSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if appSettings == nil {
		return DefaultSettings()
	}
	return appSettings
}

// LoadSettings loads settings from database into memory
func LoadSettings(db *gorm.DB) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	loaded := DefaultSettings()

	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for _, setting := range settings {
		switch setting.Key {
		case "site_title":
			loaded.SiteTitle = setting.Value
		case "public_base_url":
			loaded.PublicBaseURL = setting.Value
		case "mail_sender":
			loaded.MailSender = setting.Value
		case "reminder_subject":
			loaded.ReminderSubject = setting.Value
		case "reminder_template":
			loaded.ReminderTemplate = setting.Value
		case "sold_out_subject":
			loaded.SoldOutSubject = setting.Value
		case "sold_out_template":
			loaded.SoldOutTemplate = setting.Value
		case "announce_subject":
			loaded.AnnounceSubject = setting.Value
		case "announce_template":
			loaded.AnnounceTemplate = setting.Value
		case "signature_html":
			loaded.SignatureHTML = setting.Value
		case "signature_logo_url":
			loaded.SignatureLogoURL = setting.Value
		case "visit_tracking_active":
			loaded.VisitTrackingActive = setting.Value == "true"
		}
	}

	appSettings = loaded
	return nil
}

// SaveSettings validates and writes the settings back to the database.
func SaveSettings(db *gorm.DB, settings *AppSettings) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	settingsMap := map[string]string{
		"site_title":            settings.SiteTitle,
		"public_base_url":       settings.PublicBaseURL,
		"mail_sender":           settings.MailSender,
		"reminder_subject":      settings.ReminderSubject,
		"reminder_template":     settings.ReminderTemplate,
		"sold_out_subject":      settings.SoldOutSubject,
		"sold_out_template":     settings.SoldOutTemplate,
		"announce_subject":      settings.AnnounceSubject,
		"announce_template":     settings.AnnounceTemplate,
		"signature_html":        settings.SignatureHTML,
		"signature_logo_url":    settings.SignatureLogoURL,
		"visit_tracking_active": fmt.Sprintf("%t", settings.VisitTrackingActive),
	}

	for key, value := range settingsMap {
		var setting Setting
		result := db.Where("setting_key = ?", key).First(&setting)

		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				setting = Setting{Key: key, Value: value}
				if err := db.Create(&setting).Error; err != nil {
					return fmt.Errorf("failed to create setting %s: %w", key, err)
				}
			} else {
				return fmt.Errorf("failed to query setting %s: %w", key, result.Error)
			}
		} else {
			setting.Value = value
			if err := db.Save(&setting).Error; err != nil {
				return fmt.Errorf("failed to update setting %s: %w", key, err)
			}
		}
	}

	appSettings = settings
	return nil
}

// Validate validates the settings
func (s *AppSettings) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}
