package reminders

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"calrem/pkg/log"
)

// Persistence is the durable backend the store writes through after every
// mutation. Load never fails: an unreadable backend yields an empty
// collection and a zero counter.
type Persistence interface {
	Load() (list []*Reminder, nextID int64)
	Save(list []*Reminder, nextID int64) error
}

// Store owns the in-memory reminder collection, kept sorted ascending by
// DueAt. Every mutating method writes through to the backend exactly once;
// a failed write is logged and the in-memory change stands. All methods
// are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	clk     clock.Clock
	backend Persistence
	list    []*Reminder
	nextID  int64
}

// NewStore loads the persisted collection from backend. The next id
// continues from the persisted counter, or past the largest loaded id if
// the file predates the counter or was edited by hand.
func NewStore(backend Persistence, clk clock.Clock) *Store {
	list, next := backend.Load()
	sortByDue(list)
	for _, r := range list {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	if next < 1 {
		next = 1
	}
	return &Store{clk: clk, backend: backend, list: list, nextID: next}
}

// Add validates and inserts a new reminder due at dueAt. The title must be
// non-blank and dueAt strictly in the future.
func (s *Store) Add(title string, dueAt time.Time) (*Reminder, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Kind: KindEmptyTitle}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	if !dueAt.After(now) {
		return nil, &ValidationError{Kind: KindPastDateTime}
	}

	r := &Reminder{
		ID:      s.nextID,
		Title:   title,
		DueAt:   dueAt,
		Created: now,
	}
	r.SyncDerived()
	s.nextID++
	s.list = append(s.list, r)
	sortByDue(s.list)
	s.persist()
	return r, nil
}

// NewReminder is a pre-validated candidate for BulkCommit.
type NewReminder struct {
	Title string
	DueAt time.Time
}

// BulkCommit inserts all candidates with sequential ids, re-sorts once and
// persists once. It returns the number of reminders inserted.
func (s *Store) BulkCommit(items []NewReminder) int {
	if len(items) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	for _, it := range items {
		r := &Reminder{
			ID:      s.nextID,
			Title:   it.Title,
			DueAt:   it.DueAt,
			Created: now,
		}
		r.SyncDerived()
		s.nextID++
		s.list = append(s.list, r)
	}
	sortByDue(s.list)
	s.persist()
	return len(items)
}

// Remove deletes the reminder with the given id, reporting whether it was
// present. Removing an unknown id is a no-op and does not persist.
func (s *Store) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.list {
		if r.ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// Get returns the reminder with the given id.
func (s *Store) Get(id int64) (*Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.list {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// ListForDate returns the reminders on the given dd.mm.yyyy date,
// ascending by time of day.
func (s *Store) ListForDate(date string) []*Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Reminder
	for _, r := range s.list {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// HasAnyForDate reports whether any reminder falls on the given date.
func (s *Store) HasAnyForDate(date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.list {
		if r.Date == date {
			return true
		}
	}
	return false
}

// CountTotal returns the number of reminders in the store.
func (s *Store) CountTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

// CountForDate returns the number of reminders on the given date.
func (s *Store) CountForDate(date string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.list {
		if r.Date == date {
			n++
		}
	}
	return n
}

// CleanupExpired removes every reminder due at or before now, persisting
// once if anything was removed. It returns the number removed.
func (s *Store) CleanupExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.list[:0]
	for _, r := range s.list {
		if r.DueAt.After(now) {
			kept = append(kept, r)
		}
	}
	removed := len(s.list) - len(kept)
	if removed > 0 {
		s.list = kept
		s.persist()
	}
	return removed
}

// CollectDue returns the reminders with DueAt in (from, to], ascending.
// The caller is expected to Remove each one it acts on.
func (s *Store) CollectDue(from, to time.Time) []*Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Reminder
	for _, r := range s.list {
		if r.DueAt.After(from) && !r.DueAt.After(to) {
			out = append(out, r)
		}
	}
	return out
}

// persist writes the full collection through to the backend. Callers must
// hold s.mu.
func (s *Store) persist() {
	if err := s.backend.Save(s.list, s.nextID); err != nil {
		log.Error("persist reminders", err, "count", len(s.list))
	}
}

func sortByDue(list []*Reminder) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].DueAt.Equal(list[j].DueAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].DueAt.Before(list[j].DueAt)
	})
}
