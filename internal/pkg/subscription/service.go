package subscription

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/geoip"
)

var (
	// ErrInvalidEmail is returned for addresses that fail the basic shape check.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrInvalidToken is returned when no subscriber matches the unsubscribe token.
	ErrInvalidToken = errors.New("invalid or expired link")
	// ErrAlreadyUnsubscribed is returned on a repeat unsubscribe with the
	// same token. It is an idempotent outcome, not a server fault.
	ErrAlreadyUnsubscribed = errors.New("already unsubscribed")
)

// Result describes which transition a subscribe call took so the caller
// can phrase its response: a fresh signup, a preference update on an
// active subscriber, or a reactivation of an inactive one.
type Result struct {
	Subscriber         *models.Subscriber
	Created            bool
	Updated            bool
	Reactivated        bool
	EventAlertsEnabled bool
}

// Service owns the subscriber state machine
// (nonexistent -> active <-> inactive).
type Service struct {
	repo repository.SubscriberRepository

	// injected for deterministic tests
	now      func() time.Time
	newToken func() string
}

func NewService(repo repository.SubscriberRepository) *Service {
	return &Service{
		repo:     repo,
		now:      time.Now,
		newToken: func() string { return uuid.NewString() },
	}
}

// Subscribe runs one transition of the state machine for the given
// email. The email is normalized first; an existing row is always
// updated in place, never duplicated.
func (s *Service) Subscribe(email string, wantAlerts bool, loc geoip.Location, ip string) (*Result, error) {
	email = models.NormalizeEmail(email)
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		sub := &models.Subscriber{
			Email:              email,
			ReceiveEventAlerts: wantAlerts,
			IsActive:           true,
			UnsubscribeToken:   s.newToken(),
			Country:            loc.Country,
			City:               loc.City,
			CountryCode:        loc.CountryCode,
			JoinedAt:           s.now(),
		}
		if ip != "" {
			sub.IPAddress = &ip
		}
		if err := s.repo.Create(sub); err != nil {
			return nil, err
		}
		return &Result{Subscriber: sub, Created: true, EventAlertsEnabled: wantAlerts}, nil
	}

	if existing.IsActive {
		// active -> active: only the alert preference changes.
		existing.ReceiveEventAlerts = wantAlerts
		if err := s.repo.Update(existing); err != nil {
			return nil, err
		}
		return &Result{Subscriber: existing, Updated: true, EventAlertsEnabled: wantAlerts}, nil
	}

	// inactive -> active: reactivation keeps the token and history but
	// clears the unsubscribe state.
	existing.IsActive = true
	existing.ReceiveEventAlerts = wantAlerts
	existing.UnsubscribeReason = nil
	existing.UnsubscribedAt = nil
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return &Result{Subscriber: existing, Reactivated: true, EventAlertsEnabled: wantAlerts}, nil
}

// Unsubscribe deactivates the subscriber owning the token. The token is
// the sole valid key for this flow; unsubscribing by email is not
// supported anywhere.
func (s *Service) Unsubscribe(token string, reason string) (*models.Subscriber, error) {
	sub, err := s.repo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !sub.IsActive {
		// Keep the original unsubscribedAt untouched.
		return sub, ErrAlreadyUnsubscribed
	}

	now := s.now()
	sub.IsActive = false
	sub.UnsubscribedAt = &now
	if reason = strings.TrimSpace(reason); reason != "" {
		sub.UnsubscribeReason = &reason
	}
	if err := s.repo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Lookup fetches the subscriber for an unsubscribe token without mutating it.
func (s *Service) Lookup(token string) (*models.Subscriber, error) {
	sub, err := s.repo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return sub, nil
}

// ValidEmail is the shape check applied to signup addresses.
func ValidEmail(email string) bool {
	return strings.Contains(email, "@") && len(email) <= 255
}
