package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
)

type fakeSystemLogRepo struct {
	entries   []*models.SystemLog
	createErr error
}

func (f *fakeSystemLogRepo) Create(entry *models.SystemLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeSystemLogRepo) List(filter repository.LogFilter) ([]models.SystemLog, int64, error) {
	out := make([]models.SystemLog, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSystemLogRepo) CountByLevel() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, e := range f.entries {
		counts[e.Level]++
	}
	return counts, nil
}

func (f *fakeSystemLogRepo) DeleteAll() (int64, error) {
	n := int64(len(f.entries))
	f.entries = nil
	return n, nil
}

func (f *fakeSystemLogRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var kept []*models.SystemLog
	var deleted int64
	for _, e := range f.entries {
		if e.CreatedAt.Before(cutoff) {
			deleted++
		} else {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return deleted, nil
}

func TestRecordDefaultsToInfo(t *testing.T) {
	repo := &fakeSystemLogRepo{}
	l := NewLogger(repo)

	l.Record("lena", ActionEventCreate, "created event 7")

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, models.LOG_LEVEL_INFO, entry.Level)
	assert.Equal(t, "event.create", entry.Action)
	assert.Equal(t, "lena", entry.Username)
}

func TestRecordOptions(t *testing.T) {
	repo := &fakeSystemLogRepo{}
	l := NewLogger(repo)

	l.Record("lena", ActionSubscriberDelete, "deleted subscriber 3",
		WithLevel(models.LOG_LEVEL_WARN),
		WithActor(1),
		WithRequest("203.0.113.7", "curl/8.0"),
	)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, models.LOG_LEVEL_WARN, entry.Level)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, uint(1), *entry.ActorID)
	require.NotNil(t, entry.IPAddress)
	assert.Equal(t, "203.0.113.7", *entry.IPAddress)
	require.NotNil(t, entry.UserAgent)
	assert.Equal(t, "curl/8.0", *entry.UserAgent)
}

func TestRecordSwallowsStoreErrors(t *testing.T) {
	repo := &fakeSystemLogRepo{createErr: errors.New("table gone")}
	l := NewLogger(repo)

	assert.NotPanics(t, func() {
		l.Record("lena", ActionLogin, "logged in")
	})
}

func TestClearAllRecordsItself(t *testing.T) {
	repo := &fakeSystemLogRepo{}
	l := NewLogger(repo)
	l.Record("lena", ActionLogin, "logged in")
	l.Record("lena", ActionLogout, "logged out")

	deleted, err := l.ClearAll("lena")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// The clear itself survives as a WARN entry.
	require.Len(t, repo.entries, 1)
	assert.Equal(t, string(ActionLogsClear), repo.entries[0].Action)
	assert.Equal(t, models.LOG_LEVEL_WARN, repo.entries[0].Level)
}

func TestClearOlderThan(t *testing.T) {
	repo := &fakeSystemLogRepo{}
	l := NewLogger(repo)

	old := &models.SystemLog{Level: models.LOG_LEVEL_INFO, Action: "auth.login", Username: "lena",
		CreatedAt: time.Now().AddDate(0, 0, -40)}
	recent := &models.SystemLog{Level: models.LOG_LEVEL_INFO, Action: "auth.login", Username: "lena",
		CreatedAt: time.Now()}
	repo.entries = append(repo.entries, old, recent)

	deleted, err := l.ClearOlderThan("lena", 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// recent entry plus the WARN record of the clear
	assert.Len(t, repo.entries, 2)
}
