package visitortrack

import (
	"log"
	"strings"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/geoip"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/ratelimit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/security"
)

const maxUserAgentLen = 512

// Tracker records anonymized page visits. Each raw client address is
// counted at most once per gate window; within the window a repeat
// visit is a silent no-op. The stored row carries only the one-way
// hash, never the address.
type Tracker struct {
	visits      repository.VisitorLogRepository
	subscribers repository.SubscriberRepository
	messages    repository.MessageRepository
	gate        ratelimit.RateLimiter
	resolve     func(ip string) geoip.Location
}

func NewTracker(
	visits repository.VisitorLogRepository,
	subscribers repository.SubscriberRepository,
	messages repository.MessageRepository,
	gate ratelimit.RateLimiter,
	resolve func(ip string) geoip.Location,
) *Tracker {
	return &Tracker{
		visits:      visits,
		subscribers: subscribers,
		messages:    messages,
		gate:        gate,
		resolve:     resolve,
	}
}

// RecordVisit logs one visit for the client. Tracking is best effort:
// lookup and persistence failures are logged and swallowed so the
// public page never sees an error from analytics.
func (t *Tracker) RecordVisit(ip, userAgent string) {
	if strings.TrimSpace(ip) == "" {
		return
	}
	if !t.gate.Allow(ip) {
		return
	}

	loc := t.resolve(ip)

	isSubscriber, err := t.subscribers.ExistsActiveByIP(ip)
	if err != nil {
		log.Printf("visit tracking: subscriber lookup failed: %v", err)
	}
	hasMessaged, err := t.messages.ExistsByIP(ip)
	if err != nil {
		log.Printf("visit tracking: message lookup failed: %v", err)
	}

	if len(userAgent) > maxUserAgentLen {
		userAgent = userAgent[:maxUserAgentLen]
	}

	entry := &models.VisitorLog{
		VisitorHash:  security.VisitorHash(ip),
		Country:      loc.Country,
		City:         loc.City,
		CountryCode:  loc.CountryCode,
		UserAgent:    userAgent,
		IsSubscriber: isSubscriber,
		HasMessaged:  hasMessaged,
	}
	if err := t.visits.Create(entry); err != nil {
		log.Printf("visit tracking: failed to store visit: %v", err)
	}
}
