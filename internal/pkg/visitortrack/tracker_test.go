package visitortrack

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/geoip"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/ratelimit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/security"
)

type fakeVisitRepo struct {
	entries []models.VisitorLog
	err     error
}

func (f *fakeVisitRepo) Create(entry *models.VisitorLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}
func (f *fakeVisitRepo) Count() (int64, error)                          { return int64(len(f.entries)), nil }
func (f *fakeVisitRepo) List(offset, limit int) ([]models.VisitorLog, error) { return f.entries, nil }
func (f *fakeVisitRepo) DistinctVisitorStats(start, end time.Time) ([]repository.VisitorStat, error) {
	return nil, nil
}

type fakeSubLookup struct {
	activeIPs map[string]bool
	err       error
}

func (f *fakeSubLookup) Create(*models.Subscriber) error        { return nil }
func (f *fakeSubLookup) Update(*models.Subscriber) error        { return nil }
func (f *fakeSubLookup) Delete(uint) error                      { return nil }
func (f *fakeSubLookup) Count() (int64, error)                  { return 0, nil }
func (f *fakeSubLookup) GetByEmail(string) (*models.Subscriber, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSubLookup) GetByToken(string) (*models.Subscriber, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSubLookup) GetByID(uint) (*models.Subscriber, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSubLookup) List(int, int) ([]models.Subscriber, error)     { return nil, nil }
func (f *fakeSubLookup) ListActiveWithAlerts() ([]models.Subscriber, error) { return nil, nil }
func (f *fakeSubLookup) ExistsActiveByIP(ip string) (bool, error) {
	return f.activeIPs[ip], f.err
}

type fakeMsgLookup struct {
	messagedIPs map[string]bool
}

func (f *fakeMsgLookup) Create(*models.Message) error { return nil }
func (f *fakeMsgLookup) GetByID(uint) (*models.Message, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeMsgLookup) Update(*models.Message) error             { return nil }
func (f *fakeMsgLookup) Delete(uint) error                        { return nil }
func (f *fakeMsgLookup) List(int, int) ([]models.Message, error)  { return nil, nil }
func (f *fakeMsgLookup) Count() (int64, error)                    { return 0, nil }
func (f *fakeMsgLookup) CountUnread() (int64, error)              { return 0, nil }
func (f *fakeMsgLookup) ExistsByIP(ip string) (bool, error)       { return f.messagedIPs[ip], nil }

func staticLocation(country, city, code string) func(string) geoip.Location {
	return func(string) geoip.Location {
		return geoip.Location{Country: &country, City: &city, CountryCode: &code}
	}
}

func newTestTracker(visits *fakeVisitRepo, subs *fakeSubLookup, msgs *fakeMsgLookup) *Tracker {
	gate := ratelimit.NewMemoryLimiter(5*time.Minute, 1)
	return NewTracker(visits, subs, msgs, gate, staticLocation("Germany", "Berlin", "DE"))
}

func TestRecordVisitStoresHashedEntry(t *testing.T) {
	visits := &fakeVisitRepo{}
	tracker := newTestTracker(visits, &fakeSubLookup{}, &fakeMsgLookup{})

	tracker.RecordVisit("203.0.113.9", "Mozilla/5.0")

	require.Len(t, visits.entries, 1)
	entry := visits.entries[0]
	assert.Equal(t, security.VisitorHash("203.0.113.9"), entry.VisitorHash)
	assert.NotContains(t, entry.VisitorHash, "203.0.113.9")
	assert.Equal(t, "Germany", *entry.Country)
	assert.Equal(t, "Berlin", *entry.City)
	assert.Equal(t, "Mozilla/5.0", entry.UserAgent)
	assert.False(t, entry.IsSubscriber)
	assert.False(t, entry.HasMessaged)
}

func TestRecordVisitGateSkipsRepeatWithinWindow(t *testing.T) {
	visits := &fakeVisitRepo{}
	tracker := newTestTracker(visits, &fakeSubLookup{}, &fakeMsgLookup{})

	tracker.RecordVisit("203.0.113.9", "agent")
	tracker.RecordVisit("203.0.113.9", "agent")
	tracker.RecordVisit("198.51.100.4", "agent")

	assert.Len(t, visits.entries, 2)
}

func TestRecordVisitSnapshotsEngagementFlags(t *testing.T) {
	visits := &fakeVisitRepo{}
	subs := &fakeSubLookup{activeIPs: map[string]bool{"203.0.113.9": true}}
	msgs := &fakeMsgLookup{messagedIPs: map[string]bool{"203.0.113.9": true}}
	tracker := newTestTracker(visits, subs, msgs)

	tracker.RecordVisit("203.0.113.9", "agent")

	require.Len(t, visits.entries, 1)
	assert.True(t, visits.entries[0].IsSubscriber)
	assert.True(t, visits.entries[0].HasMessaged)
}

func TestRecordVisitTruncatesLongUserAgent(t *testing.T) {
	visits := &fakeVisitRepo{}
	tracker := newTestTracker(visits, &fakeSubLookup{}, &fakeMsgLookup{})

	tracker.RecordVisit("203.0.113.9", strings.Repeat("x", 600))

	require.Len(t, visits.entries, 1)
	assert.Len(t, visits.entries[0].UserAgent, maxUserAgentLen)
}

func TestRecordVisitSwallowsLookupAndStoreFailures(t *testing.T) {
	visits := &fakeVisitRepo{err: errors.New("disk full")}
	subs := &fakeSubLookup{err: errors.New("db down")}
	tracker := newTestTracker(visits, subs, &fakeMsgLookup{})

	assert.NotPanics(t, func() {
		tracker.RecordVisit("203.0.113.9", "agent")
	})
	assert.Empty(t, visits.entries)
}

func TestRecordVisitIgnoresEmptyAddress(t *testing.T) {
	visits := &fakeVisitRepo{}
	tracker := newTestTracker(visits, &fakeSubLookup{}, &fakeMsgLookup{})

	tracker.RecordVisit("", "agent")
	tracker.RecordVisit("   ", "agent")

	assert.Empty(t, visits.entries)
}
