package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/mail"
)

// Kind selects which template pair a dispatch uses.
type Kind string

const (
	KindReminder     Kind = "reminder"
	KindSoldOut      Kind = "soldOut"
	KindAnnouncement Kind = "announcement"
)

// DispatchResult is the aggregate outcome of one batch send. Individual
// recipient failures are swallowed into the aggregate; email here is
// at-least-effort, not exactly-once.
type DispatchResult struct {
	Success        bool   `json:"success"`
	RecipientCount int    `json:"recipient_count"`
	Error          string `json:"error,omitempty"`
}

// Dispatcher composes and sends event notification emails to the active
// alert-subscribed recipient set. Per-event opt-outs (autoReminder,
// autoSoldOut) are the caller's responsibility, not checked here.
type Dispatcher struct {
	subscribers repository.SubscriberRepository
	mailer      mail.Mailer
	settings    func() *models.AppSettings
}

func NewDispatcher(subscribers repository.SubscriberRepository, mailer mail.Mailer, settings func() *models.AppSettings) *Dispatcher {
	return &Dispatcher{
		subscribers: subscribers,
		mailer:      mailer,
		settings:    settings,
	}
}

// Send dispatches one notification batch for the event. A failing
// recipient never aborts the rest of the batch.
func (d *Dispatcher) Send(kind Kind, event *models.Event) DispatchResult {
	settings := d.settings()

	subjectTmpl, bodyTmpl, ok := d.templates(kind, settings)
	if !ok {
		return DispatchResult{Error: fmt.Sprintf("unknown notification kind %q", kind)}
	}

	recipients, err := d.subscribers.ListActiveWithAlerts()
	if err != nil {
		log.Printf("notification dispatch aborted, recipient query failed: %v", err)
		return DispatchResult{Error: "failed to load recipients"}
	}

	vars := EventVars(event, settings)
	subject := Render(subjectTmpl, vars)

	sent := 0
	failed := 0
	for _, sub := range recipients {
		vars["unsubscribe_url"] = UnsubscribeURL(settings, sub.UnsubscribeToken)
		body := AppendSignature(Render(bodyTmpl, vars), settings)

		if err := d.mailer.Send(sub.Email, subject, body); err != nil {
			failed++
			log.Printf("notification send to %s failed: %v", sub.Email, err)
			continue
		}
		sent++
	}

	result := DispatchResult{
		Success:        failed == 0,
		RecipientCount: sent,
	}
	if failed > 0 {
		result.Error = fmt.Sprintf("%d of %d sends failed", failed, len(recipients))
	}
	return result
}

// SendReply is the single-recipient variant used for manual replies to
// contact messages. It reuses the signature-append path of batch sends.
func (d *Dispatcher) SendReply(msg *models.Message, subject, replyText string) error {
	settings := d.settings()
	body := AppendSignature(replyText, settings)
	return d.mailer.Send(msg.Email, subject, body)
}

func (d *Dispatcher) templates(kind Kind, settings *models.AppSettings) (subject, body string, ok bool) {
	switch kind {
	case KindReminder:
		return settings.ReminderSubject, settings.ReminderTemplate, true
	case KindSoldOut:
		return settings.SoldOutSubject, settings.SoldOutTemplate, true
	case KindAnnouncement:
		return settings.AnnounceSubject, settings.AnnounceTemplate, true
	default:
		return "", "", false
	}
}

// reminderLeadTime is how far ahead of an event the reminder sweep
// looks: the 24 hour window starting exactly seven days out.
const reminderLeadTime = 7 * 24 * time.Hour

// ReminderWindow returns the [start, end) date window the cron sweep
// matches events against.
func ReminderWindow(now time.Time) (time.Time, time.Time) {
	start := now.Add(reminderLeadTime)
	return start, start.Add(24 * time.Hour)
}
