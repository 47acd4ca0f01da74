package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LenaVoss/lenavoss-web/app/models"
)

func TestSoldOutTransition(t *testing.T) {
	cases := []struct {
		name        string
		before      bool
		after       bool
		autoSoldOut bool
		want        bool
	}{
		{"false to true with auto", false, true, true, true},
		{"false to true without auto", false, true, false, false},
		{"true to true", true, true, true, false},
		{"true to false", true, false, true, false},
		{"false to false", false, false, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := &models.Event{IsSoldOut: tc.before, AutoSoldOut: tc.autoSoldOut}
			after := &models.Event{IsSoldOut: tc.after, AutoSoldOut: tc.autoSoldOut}
			assert.Equal(t, tc.want, SoldOutTransition(before, after))
		})
	}
}

func TestObserveEventUpdateFiresOncePerTransition(t *testing.T) {
	repo := &fakeRecipientRepo{subs: []models.Subscriber{
		{Email: "a@x.com", UnsubscribeToken: "tok-a"},
	}}
	mailer := &fakeMailer{}
	d := newTestDispatcher(repo, mailer)

	before := &models.Event{ID: 7, Title: "Acoustic Night", IsSoldOut: false, AutoSoldOut: true,
		Date: time.Date(2025, 7, 12, 20, 0, 0, 0, time.UTC)}
	after := &models.Event{ID: 7, Title: "Acoustic Night", IsSoldOut: true, AutoSoldOut: true,
		Date: before.Date}

	fired := ObserveEventUpdate(d, before, after)
	require.True(t, fired)

	// The dispatch runs asynchronously relative to the update handler.
	assert.Eventually(t, func() bool {
		return len(mailer.sentMails()) == 1
	}, time.Second, 10*time.Millisecond)

	// A repeated save with no transition fires nothing.
	assert.False(t, ObserveEventUpdate(d, after, after))
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, mailer.sentMails(), 1)
}
