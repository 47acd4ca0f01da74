package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/osteele/liquid"

	"github.com/LenaVoss/lenavoss-web/app/models"
)

var engine = liquid.NewEngine()

// Render substitutes {{ token }} placeholders in a notification
// template. Unknown tokens render empty rather than failing a send.
func Render(template string, vars map[string]interface{}) string {
	out, err := engine.ParseAndRenderString(template, vars)
	if err != nil {
		log.Printf("template render failed, falling back to raw template: %v", err)
		return template
	}
	return out
}

// EventVars builds the substitution context for an event notification.
// The unsubscribe URL is per recipient and gets added by the dispatcher.
func EventVars(event *models.Event, settings *models.AppSettings) map[string]interface{} {
	return map[string]interface{}{
		"site_title":     settings.SiteTitle,
		"event_title":    event.Title,
		"event_date":     event.Date.Format("Monday, 2 January 2006 15:04"),
		"event_location": event.Location,
		"event_url":      event.TicketURL,
	}
}

// AppendSignature appends the shared signature block (logo plus
// rich-text body) to an outbound HTML body. Every outbound mail goes
// through this, manual replies included.
func AppendSignature(body string, settings *models.AppSettings) string {
	if settings.SignatureHTML == "" && settings.SignatureLogoURL == "" {
		return body
	}

	sig := "<div class=\"signature\">"
	if settings.SignatureLogoURL != "" {
		sig += fmt.Sprintf("<img src=%q alt=%q style=\"max-height:80px\">", settings.SignatureLogoURL, settings.SiteTitle)
	}
	if settings.SignatureHTML != "" {
		sig += settings.SignatureHTML
	}
	sig += "</div>"

	return body + "\n<br>\n" + sig
}

// UnsubscribeURL builds the per-subscriber opt-out link embedded in
// every newsletter mail.
func UnsubscribeURL(settings *models.AppSettings, token string) string {
	return fmt.Sprintf("%s/unsubscribe/%s", settings.PublicBaseURL, token)
}

// FormatSweepDate is the date format used in cron sweep summaries.
func FormatSweepDate(t time.Time) string {
	return t.Format("2006-01-02")
}
