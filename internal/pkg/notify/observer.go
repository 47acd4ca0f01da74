package notify

import (
	"log"

	"github.com/LenaVoss/lenavoss-web/app/models"
)

// SoldOutTransition reports whether an event update is the one state
// change that fires the sold-out notification: not sold out before,
// sold out after, with the automatic alert enabled. A true->true update
// never fires again.
func SoldOutTransition(before, after *models.Event) bool {
	return !before.IsSoldOut && after.IsSoldOut && after.AutoSoldOut
}

// ObserveEventUpdate inspects a persisted before/after pair and fires
// the sold-out dispatch asynchronously when the transition matches.
// The HTTP response does not wait for mail delivery.
func ObserveEventUpdate(d *Dispatcher, before, after *models.Event) bool {
	if !SoldOutTransition(before, after) {
		return false
	}

	go func(event models.Event) {
		result := d.Send(KindSoldOut, &event)
		if !result.Success {
			log.Printf("sold-out notification for event %d incomplete: %s", event.ID, result.Error)
		}
	}(*after)

	return true
}
