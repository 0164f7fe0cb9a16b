package reminders

import "time"

const (
	// DateLayout is the dd.mm.yyyy grouping key used by the calendar.
	DateLayout = "02.01.2006"
	// TimeLayout is the zero-padded 24-hour display time.
	TimeLayout = "15:04"
)

// Reminder is a single persisted reminder entry. DueAt is authoritative
// for ordering and expiry; Date and Time are display duplicates derived
// from it.
type Reminder struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Date    string    `json:"date"`
	Time    string    `json:"time"`
	DueAt   time.Time `json:"datetime"`
	Created time.Time `json:"created"`
}

// ScheduledTime returns the time the reminder is due to fire.
func (r *Reminder) ScheduledTime() time.Time {
	return r.DueAt
}

// SyncDerived recomputes the Date and Time strings from DueAt.
func (r *Reminder) SyncDerived() {
	r.Date = r.DueAt.Format(DateLayout)
	r.Time = r.DueAt.Format(TimeLayout)
}

// DateKey formats t as the calendar's dd.mm.yyyy grouping key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
