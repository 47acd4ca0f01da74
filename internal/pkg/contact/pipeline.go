package contact

import (
	"errors"
	"strings"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/geoip"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/ratelimit"
)

const (
	maxEmailLen   = 255
	maxMessageLen = 5000
	minNameLen    = 2
)

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidMessage = errors.New("invalid_message")
	ErrRateLimited    = errors.New("too_many_requests")
)

// Submission carries the raw contact form fields. Honey and Website are
// the two hidden decoy fields; real visitors leave both empty.
type Submission struct {
	Name    string
	Email   string
	Body    string
	Honey   string
	Website string
	IP      string
}

// Pipeline validates and persists contact submissions. Steps run in a
// fixed order and each one can short-circuit: honeypot, field
// validation, rate limit on email and address, best-effort geolocation,
// persistence.
type Pipeline struct {
	messages repository.MessageRepository
	limiter  ratelimit.RateLimiter
	resolve  func(ip string) geoip.Location
}

func NewPipeline(messages repository.MessageRepository, limiter ratelimit.RateLimiter, resolve func(ip string) geoip.Location) *Pipeline {
	return &Pipeline{
		messages: messages,
		limiter:  limiter,
		resolve:  resolve,
	}
}

// Submit runs the pipeline. A trapped honeypot returns (nil, nil): the
// caller reports success without anything having been consumed or
// stored, so automated submitters learn nothing from the response.
func (p *Pipeline) Submit(sub Submission) (*models.Message, error) {
	if sub.Honey != "" || sub.Website != "" {
		return nil, nil
	}

	name := strings.TrimSpace(sub.Name)
	email := models.NormalizeEmail(sub.Email)
	body := strings.TrimSpace(sub.Body)

	if len(name) < minNameLen {
		return nil, ErrInvalidName
	}
	if !strings.Contains(email, "@") || len(email) > maxEmailLen {
		return nil, ErrInvalidEmail
	}
	if body == "" || len(body) > maxMessageLen {
		return nil, ErrInvalidMessage
	}

	// Both keys must pass; either denial blocks the request.
	if !p.limiter.Allow(email) {
		return nil, ErrRateLimited
	}
	if !p.limiter.Allow(ratelimit.IPKey(sub.IP)) {
		return nil, ErrRateLimited
	}

	loc := p.resolve(sub.IP)

	msg := &models.Message{
		Name:        name,
		Email:       email,
		Body:        body,
		Country:     loc.Country,
		City:        loc.City,
		CountryCode: loc.CountryCode,
	}
	if sub.IP != "" {
		msg.IPAddress = &sub.IP
	}

	if err := p.messages.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Code maps a pipeline error to its stable wire code.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, ErrInvalidEmail):
		return "invalid_email"
	case errors.Is(err, ErrInvalidMessage):
		return "invalid_message"
	case errors.Is(err, ErrRateLimited):
		return "too_many_requests"
	default:
		return "internal_error"
	}
}
