package reminders_test

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calrem/pkg/reminders"
)

// memoryBackend is an in-memory reminders.Persistence that counts writes
// and can be made to fail.
type memoryBackend struct {
	list    []*reminders.Reminder
	nextID  int64
	saves   int
	failing bool
}

func (m *memoryBackend) Load() ([]*reminders.Reminder, int64) {
	return m.list, m.nextID
}

func (m *memoryBackend) Save(list []*reminders.Reminder, nextID int64) error {
	m.saves++
	if m.failing {
		return errors.New("disk full")
	}
	m.list = append([]*reminders.Reminder(nil), list...)
	m.nextID = nextID
	return nil
}

func newTestStore(t *testing.T) (*reminders.Store, *memoryBackend, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	mock.Set(time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC))
	backend := &memoryBackend{}
	return reminders.NewStore(backend, mock), backend, mock
}

func TestAddAndListForDate(t *testing.T) {
	store, backend, mock := newTestStore(t)

	due := mock.Now().Add(6 * time.Hour)
	r, err := store.Add("Dentist", due)
	require.NoError(t, err)

	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, "10.06.2025", r.Date)
	assert.Equal(t, "18:00", r.Time)
	assert.True(t, r.DueAt.Equal(due))

	list := store.ListForDate("10.06.2025")
	require.Len(t, list, 1)
	assert.Equal(t, "Dentist", list[0].Title)
	assert.Equal(t, 1, backend.saves)
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	store, backend, mock := newTestStore(t)

	_, err := store.Add("   ", mock.Now().Add(time.Hour))
	require.Error(t, err)
	assert.True(t, reminders.IsValidation(err, reminders.KindEmptyTitle))
	assert.Equal(t, 0, store.CountTotal())
	assert.Equal(t, 0, backend.saves)
}

func TestAddRejectsPastDateTime(t *testing.T) {
	store, backend, mock := newTestStore(t)

	for _, due := range []time.Time{
		mock.Now().Add(-time.Minute),
		mock.Now(), // not strictly in the future
	} {
		_, err := store.Add("Too late", due)
		require.Error(t, err)
		assert.True(t, reminders.IsValidation(err, reminders.KindPastDateTime))
	}
	assert.Equal(t, 0, store.CountTotal())
	assert.Equal(t, 0, backend.saves)
}

func TestStoreStaysSorted(t *testing.T) {
	store, _, mock := newTestStore(t)
	now := mock.Now()

	_, err := store.Add("third", now.Add(3*time.Hour))
	require.NoError(t, err)
	_, err = store.Add("first", now.Add(1*time.Hour))
	require.NoError(t, err)
	store.BulkCommit([]reminders.NewReminder{
		{Title: "fourth", DueAt: now.Add(26 * time.Hour)},
		{Title: "second", DueAt: now.Add(2 * time.Hour)},
	})

	all := store.CollectDue(now, now.Add(48*time.Hour))
	require.Len(t, all, 4)
	for i, want := range []string{"first", "second", "third", "fourth"} {
		assert.Equal(t, want, all[i].Title)
	}

	// Same-day listing is ascending by time of day.
	day := store.ListForDate("10.06.2025")
	require.Len(t, day, 3)
	assert.Equal(t, "13:00", day[0].Time)
	assert.Equal(t, "15:00", day[2].Time)
}

func TestBulkCommitPersistsOnce(t *testing.T) {
	store, backend, mock := newTestStore(t)
	now := mock.Now()

	n := store.BulkCommit([]reminders.NewReminder{
		{Title: "a", DueAt: now.Add(time.Hour)},
		{Title: "b", DueAt: now.Add(2 * time.Hour)},
		{Title: "c", DueAt: now.Add(3 * time.Hour)},
	})
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, store.CountTotal())
	assert.Equal(t, 1, backend.saves)

	assert.Equal(t, 0, store.BulkCommit(nil))
	assert.Equal(t, 1, backend.saves)
}

func TestRemoveIsIdempotent(t *testing.T) {
	store, backend, mock := newTestStore(t)

	r, err := store.Add("one", mock.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, store.Remove(r.ID))
	assert.Equal(t, 0, store.CountTotal())
	saves := backend.saves

	// Removing an unknown id is a no-op and does not persist.
	assert.False(t, store.Remove(r.ID))
	assert.False(t, store.Remove(99))
	assert.Equal(t, 0, store.CountTotal())
	assert.Equal(t, saves, backend.saves)
}

func TestGet(t *testing.T) {
	store, _, mock := newTestStore(t)

	r, err := store.Add("find me", mock.Now().Add(time.Hour))
	require.NoError(t, err)

	got, ok := store.Get(r.ID)
	require.True(t, ok)
	assert.Equal(t, "find me", got.Title)

	_, ok = store.Get(42)
	assert.False(t, ok)
}

func TestCleanupExpired(t *testing.T) {
	store, backend, mock := newTestStore(t)

	_, err := store.Add("soon", mock.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = store.Add("later", mock.Now().Add(3*time.Hour))
	require.NoError(t, err)
	saves := backend.saves

	mock.Add(2 * time.Hour)
	assert.Equal(t, 1, store.CleanupExpired(mock.Now()))
	assert.Equal(t, 1, store.CountTotal())
	assert.Equal(t, saves+1, backend.saves)

	// Nothing left to clean: no removal, no write.
	assert.Equal(t, 0, store.CleanupExpired(mock.Now()))
	assert.Equal(t, saves+1, backend.saves)
}

func TestCountsAndPresence(t *testing.T) {
	store, _, mock := newTestStore(t)
	now := mock.Now()

	_, err := store.Add("a", now.Add(2*time.Hour))
	require.NoError(t, err)
	_, err = store.Add("b", now.Add(3*time.Hour))
	require.NoError(t, err)
	_, err = store.Add("c", now.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.Equal(t, 3, store.CountTotal())
	assert.Equal(t, 2, store.CountForDate("10.06.2025"))
	assert.True(t, store.HasAnyForDate("10.06.2025"))
	assert.True(t, store.HasAnyForDate("12.06.2025"))
	assert.False(t, store.HasAnyForDate("11.06.2025"))
}

func TestIDsAreNeverReused(t *testing.T) {
	store, _, mock := newTestStore(t)
	now := mock.Now()

	for _, title := range []string{"a", "b", "c"} {
		_, err := store.Add(title, now.Add(time.Hour))
		require.NoError(t, err)
	}
	require.True(t, store.Remove(2))

	r, err := store.Add("d", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(4), r.ID)
}

func TestNextIDRecoveredFromBackend(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC))
	seed := &reminders.Reminder{ID: 3, Title: "old", DueAt: mock.Now().Add(time.Hour)}
	seed.SyncDerived()

	// Persisted counter wins when ahead of the largest id.
	backend := &memoryBackend{list: []*reminders.Reminder{seed}, nextID: 10}
	store := reminders.NewStore(backend, mock)
	r, err := store.Add("new", mock.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(10), r.ID)

	// A legacy file without a counter still gets a non-colliding id.
	backend = &memoryBackend{list: []*reminders.Reminder{seed}}
	store = reminders.NewStore(backend, mock)
	r, err = store.Add("new", mock.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(4), r.ID)
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC))
	backend := &memoryBackend{failing: true}
	store := reminders.NewStore(backend, mock)

	r, err := store.Add("still here", mock.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, store.CountTotal())

	_, ok := store.Get(r.ID)
	assert.True(t, ok)
}
