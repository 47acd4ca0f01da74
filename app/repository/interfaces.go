package repository

import (
	"time"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for admin account operations
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

// SubscriberRepository defines the interface for newsletter subscriber operations
type SubscriberRepository interface {
	Create(sub *models.Subscriber) error
	GetByEmail(email string) (*models.Subscriber, error)
	GetByToken(token string) (*models.Subscriber, error)
	GetByID(id uint) (*models.Subscriber, error)
	Update(sub *models.Subscriber) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Subscriber, error)
	Count() (int64, error)
	ListActiveWithAlerts() ([]models.Subscriber, error)
	ExistsActiveByIP(ip string) (bool, error)
}

// MessageRepository defines the interface for contact message operations
type MessageRepository interface {
	Create(msg *models.Message) error
	GetByID(id uint) (*models.Message, error)
	Update(msg *models.Message) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Message, error)
	Count() (int64, error)
	CountUnread() (int64, error)
	ExistsByIP(ip string) (bool, error)
}

// VisitorStat is a distinct-visitor aggregate grouped by hash and location
type VisitorStat struct {
	Country     *string
	City        *string
	CountryCode *string
	Visitors    int64
	Visits      int64
}

// VisitorLogRepository defines the interface for the append-only visit log
type VisitorLogRepository interface {
	Create(entry *models.VisitorLog) error
	Count() (int64, error)
	List(offset, limit int) ([]models.VisitorLog, error)
	DistinctVisitorStats(start, end time.Time) ([]VisitorStat, error)
}

// LogFilter narrows an audit log listing
type LogFilter struct {
	Level          string
	ActionContains string
	UserContains   string
	From           *time.Time
	To             *time.Time
	Offset         int
	Limit          int
}

// SystemLogRepository defines the interface for the audit log store
type SystemLogRepository interface {
	Create(entry *models.SystemLog) error
	List(filter LogFilter) ([]models.SystemLog, int64, error)
	CountByLevel() (map[string]int64, error)
	DeleteAll() (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// EventRepository defines the interface for event operations
type EventRepository interface {
	Create(event *models.Event) error
	GetByID(id uint) (*models.Event, error)
	Update(event *models.Event) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Event, error)
	ListActive() ([]models.Event, error)
	Count() (int64, error)
	// ReminderCandidates returns active, not sold out, reminder-enabled
	// events whose date falls inside [start, end).
	ReminderCandidates(start, end time.Time) ([]models.Event, error)
}

// ProductRepository defines the interface for merch items
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	ListActive() ([]models.Product, error)
	List(offset, limit int) ([]models.Product, error)
}

// GalleryRepository defines the interface for press/media images
type GalleryRepository interface {
	Create(image *models.GalleryImage) error
	GetByID(id uint) (*models.GalleryImage, error)
	Update(image *models.GalleryImage) error
	Delete(id uint) error
	List() ([]models.GalleryImage, error)
	ListPressKit() ([]models.GalleryImage, error)
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User       UserRepository
	Subscriber SubscriberRepository
	Message    MessageRepository
	VisitorLog VisitorLogRepository
	SystemLog  SystemLogRepository
	Event      EventRepository
	Product    ProductRepository
	Gallery    GalleryRepository
	Setting    SettingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Subscriber: NewSubscriberRepository(db),
		Message:    NewMessageRepository(db),
		VisitorLog: NewVisitorLogRepository(db),
		SystemLog:  NewSystemLogRepository(db),
		Event:      NewEventRepository(db),
		Product:    NewProductRepository(db),
		Gallery:    NewGalleryRepository(db),
		Setting:    NewSettingRepository(db),
	}
}
