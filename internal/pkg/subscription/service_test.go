package subscription

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/geoip"
)

// fakeSubscriberRepo keeps subscribers in memory keyed by id.
type fakeSubscriberRepo struct {
	nextID uint
	rows   map[uint]*models.Subscriber
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{nextID: 1, rows: make(map[uint]*models.Subscriber)}
}

func (f *fakeSubscriberRepo) Create(sub *models.Subscriber) error {
	for _, row := range f.rows {
		if row.Email == sub.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	sub.ID = f.nextID
	f.nextID++
	copied := *sub
	f.rows[sub.ID] = &copied
	return nil
}

func (f *fakeSubscriberRepo) GetByEmail(email string) (*models.Subscriber, error) {
	for _, row := range f.rows {
		if row.Email == models.NormalizeEmail(email) {
			copied := *row
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubscriberRepo) GetByToken(token string) (*models.Subscriber, error) {
	for _, row := range f.rows {
		if row.UnsubscribeToken == token {
			copied := *row
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubscriberRepo) GetByID(id uint) (*models.Subscriber, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (f *fakeSubscriberRepo) Update(sub *models.Subscriber) error {
	if _, ok := f.rows[sub.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *sub
	f.rows[sub.ID] = &copied
	return nil
}

func (f *fakeSubscriberRepo) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeSubscriberRepo) List(offset, limit int) ([]models.Subscriber, error) { return nil, nil }

func (f *fakeSubscriberRepo) Count() (int64, error) { return int64(len(f.rows)), nil }

func (f *fakeSubscriberRepo) ListActiveWithAlerts() ([]models.Subscriber, error) {
	var out []models.Subscriber
	for _, row := range f.rows {
		if row.IsActive && row.ReceiveEventAlerts {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeSubscriberRepo) ExistsActiveByIP(ip string) (bool, error) {
	for _, row := range f.rows {
		if row.IsActive && row.IPAddress != nil && *row.IPAddress == ip {
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*Service, *fakeSubscriberRepo) {
	repo := newFakeSubscriberRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	tokenSeq := 0
	svc.newToken = func() string {
		tokenSeq++
		return string(rune('a'+tokenSeq-1)) + "-token"
	}
	return svc, repo
}

func TestSubscribeCreatesNewSubscriber(t *testing.T) {
	svc, repo := newTestService()

	res, err := svc.Subscribe("  A@X.com ", true, geoip.Location{}, "203.0.113.7")
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.False(t, res.Updated)
	assert.False(t, res.Reactivated)
	assert.Equal(t, "a@x.com", res.Subscriber.Email)
	assert.True(t, res.Subscriber.IsActive)
	assert.NotEmpty(t, res.Subscriber.UnsubscribeToken)

	count, _ := repo.Count()
	assert.Equal(t, int64(1), count)
}

func TestSubscribeTwiceUpdatesInPlace(t *testing.T) {
	svc, repo := newTestService()

	first, err := svc.Subscribe("a@x.com", true, geoip.Location{}, "")
	require.NoError(t, err)

	second, err := svc.Subscribe("A@X.COM", false, geoip.Location{}, "")
	require.NoError(t, err)

	assert.True(t, second.Updated)
	assert.False(t, second.Created)
	assert.False(t, second.Subscriber.ReceiveEventAlerts)
	assert.Equal(t, first.Subscriber.ID, second.Subscriber.ID)

	count, _ := repo.Count()
	assert.Equal(t, int64(1), count)
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	svc, _ := newTestService()

	for _, email := range []string{"", "no-at-sign", "x@" + strings.Repeat("a", 254)} {
		_, err := svc.Subscribe(email, true, geoip.Location{}, "")
		assert.ErrorIs(t, err, ErrInvalidEmail, email)
	}
}

func TestUnsubscribeAndReactivate(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.Subscribe("a@x.com", true, geoip.Location{}, "")
	require.NoError(t, err)
	token := res.Subscriber.UnsubscribeToken

	sub, err := svc.Unsubscribe(token, "too many emails")
	require.NoError(t, err)
	assert.False(t, sub.IsActive)
	require.NotNil(t, sub.UnsubscribedAt)
	require.NotNil(t, sub.UnsubscribeReason)
	assert.Equal(t, "too many emails", *sub.UnsubscribeReason)

	// inactive -> active clears the unsubscribe state, keeps the token
	re, err := svc.Subscribe("a@x.com", true, geoip.Location{}, "")
	require.NoError(t, err)
	assert.True(t, re.Reactivated)
	assert.True(t, re.Subscriber.IsActive)
	assert.Nil(t, re.Subscriber.UnsubscribeReason)
	assert.Nil(t, re.Subscriber.UnsubscribedAt)
	assert.Equal(t, token, re.Subscriber.UnsubscribeToken)
}

func TestRepeatUnsubscribeIsIdempotent(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.Subscribe("a@x.com", true, geoip.Location{}, "")
	require.NoError(t, err)
	token := res.Subscriber.UnsubscribeToken

	first, err := svc.Unsubscribe(token, "")
	require.NoError(t, err)
	firstAt := *first.UnsubscribedAt

	second, err := svc.Unsubscribe(token, "changed my mind")
	assert.ErrorIs(t, err, ErrAlreadyUnsubscribed)
	require.NotNil(t, second.UnsubscribedAt)
	assert.Equal(t, firstAt, *second.UnsubscribedAt)
	assert.Nil(t, second.UnsubscribeReason)
}

func TestUnsubscribeUnknownToken(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Unsubscribe("does-not-exist", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
