package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LenaVoss/lenavoss-web/app/models"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeMailer records sends and can be told to fail for given addresses.
type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo map[string]bool
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo[to] {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailer) sentMails() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

type fakeRecipientRepo struct {
	subs []models.Subscriber
	err  error
}

func (f *fakeRecipientRepo) Create(sub *models.Subscriber) error  { return nil }
func (f *fakeRecipientRepo) Update(sub *models.Subscriber) error  { return nil }
func (f *fakeRecipientRepo) Delete(id uint) error                 { return nil }
func (f *fakeRecipientRepo) Count() (int64, error)                { return 0, nil }
func (f *fakeRecipientRepo) ExistsActiveByIP(string) (bool, error) { return false, nil }
func (f *fakeRecipientRepo) GetByEmail(string) (*models.Subscriber, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRecipientRepo) GetByToken(string) (*models.Subscriber, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRecipientRepo) GetByID(uint) (*models.Subscriber, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRecipientRepo) List(offset, limit int) ([]models.Subscriber, error) { return nil, nil }
func (f *fakeRecipientRepo) ListActiveWithAlerts() ([]models.Subscriber, error) {
	return f.subs, f.err
}

func testSettings() *models.AppSettings {
	s := models.DefaultSettings()
	s.SignatureHTML = "<p>— Lena</p>"
	return s
}

func testEvent() *models.Event {
	return &models.Event{
		ID:       7,
		Title:    "Acoustic Night",
		Location: "Kulturhaus Berlin",
		Date:     time.Date(2025, 7, 12, 20, 0, 0, 0, time.UTC),
	}
}

func newTestDispatcher(repo *fakeRecipientRepo, mailer *fakeMailer) *Dispatcher {
	return NewDispatcher(repo, mailer, testSettings)
}

func TestSendRendersTemplateAndSignature(t *testing.T) {
	repo := &fakeRecipientRepo{subs: []models.Subscriber{
		{Email: "a@x.com", UnsubscribeToken: "tok-a", IsActive: true, ReceiveEventAlerts: true},
	}}
	mailer := &fakeMailer{}
	d := newTestDispatcher(repo, mailer)

	result := d.Send(KindReminder, testEvent())

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.RecipientCount)

	sent := mailer.sentMails()
	require.Len(t, sent, 1)
	assert.Equal(t, "a@x.com", sent[0].To)
	assert.Contains(t, sent[0].Subject, "Acoustic Night")
	assert.Contains(t, sent[0].Body, "Acoustic Night")
	assert.Contains(t, sent[0].Body, "Kulturhaus Berlin")
	assert.Contains(t, sent[0].Body, "— Lena")
}

func TestSendContinuesPastFailingRecipient(t *testing.T) {
	repo := &fakeRecipientRepo{subs: []models.Subscriber{
		{Email: "a@x.com", UnsubscribeToken: "tok-a"},
		{Email: "broken@x.com", UnsubscribeToken: "tok-b"},
		{Email: "c@x.com", UnsubscribeToken: "tok-c"},
	}}
	mailer := &fakeMailer{failTo: map[string]bool{"broken@x.com": true}}
	d := newTestDispatcher(repo, mailer)

	result := d.Send(KindSoldOut, testEvent())

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.RecipientCount)
	assert.Contains(t, result.Error, "1 of 3")
	assert.Len(t, mailer.sentMails(), 2)
}

func TestSendUnknownKind(t *testing.T) {
	d := newTestDispatcher(&fakeRecipientRepo{}, &fakeMailer{})

	result := d.Send(Kind("carrier-pigeon"), testEvent())
	assert.False(t, result.Success)
	assert.Zero(t, result.RecipientCount)
	assert.NotEmpty(t, result.Error)
}

func TestSendRecipientQueryFailure(t *testing.T) {
	repo := &fakeRecipientRepo{err: errors.New("db down")}
	d := newTestDispatcher(repo, &fakeMailer{})

	result := d.Send(KindAnnouncement, testEvent())
	assert.False(t, result.Success)
	assert.Zero(t, result.RecipientCount)
}

func TestSendEmbedsPerRecipientUnsubscribeURL(t *testing.T) {
	settings := testSettings()
	settings.ReminderTemplate = `<p>{{ event_title }}</p><a href="{{ unsubscribe_url }}">opt out</a>`
	repo := &fakeRecipientRepo{subs: []models.Subscriber{
		{Email: "a@x.com", UnsubscribeToken: "tok-a"},
		{Email: "b@x.com", UnsubscribeToken: "tok-b"},
	}}
	mailer := &fakeMailer{}
	d := NewDispatcher(repo, mailer, func() *models.AppSettings { return settings })

	d.Send(KindReminder, testEvent())

	sent := mailer.sentMails()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0].Body, "/unsubscribe/tok-a")
	assert.Contains(t, sent[1].Body, "/unsubscribe/tok-b")
}

func TestSendReplyAppendsSignature(t *testing.T) {
	mailer := &fakeMailer{}
	d := newTestDispatcher(&fakeRecipientRepo{}, mailer)

	msg := &models.Message{Email: "fan@x.com"}
	err := d.SendReply(msg, "Re: your message", "<p>Thanks for writing!</p>")
	require.NoError(t, err)

	sent := mailer.sentMails()
	require.Len(t, sent, 1)
	assert.Equal(t, "fan@x.com", sent[0].To)
	assert.Contains(t, sent[0].Body, "Thanks for writing!")
	assert.Contains(t, sent[0].Body, "— Lena")
}

func TestReminderWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	start, end := ReminderWindow(now)

	assert.Equal(t, now.AddDate(0, 0, 7), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
