// Package scheduler polls the reminder store and fires due notifications.
package scheduler

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"calrem/pkg/log"
	"calrem/pkg/reminders"
)

// DefaultInterval is how often the store is scanned for due reminders.
const DefaultInterval = time.Minute

// NotifyFunc is invoked once per due reminder, before it is removed.
type NotifyFunc func(*reminders.Reminder)

// DueSource is the slice of the store the scheduler needs.
type DueSource interface {
	CollectDue(from, to time.Time) []*reminders.Reminder
	Remove(id int64) bool
}

// Scheduler scans a DueSource at a fixed interval and fires each due
// reminder at most once, removing it from the source afterwards.
type Scheduler struct {
	source   DueSource
	notify   NotifyFunc
	clk      clock.Clock
	interval time.Duration
}

func New(source DueSource, notify NotifyFunc, clk clock.Clock, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		source:   source,
		notify:   notify,
		clk:      clk,
		interval: interval,
	}
}

// Run polls until ctx is canceled. This is a blocking function that should
// be called in a background goroutine; ticks never overlap because they
// all run on this goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	t := s.clk.Ticker(s.interval)
	defer t.Stop()

	// The first window reaches one interval back so a reminder due just
	// before startup (but after cleanup) is not skipped. Later windows
	// start at the previous observed tick, so a stalled tick still fires
	// everything that came due during the stall.
	last := s.clk.Now().Add(-s.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			last = s.tick(last, now)
		}
	}
}

func (s *Scheduler) tick(last, now time.Time) time.Time {
	log.Debug("scheduler tick", "window_start", last.Format(time.RFC822), "window_end", now.Format(time.RFC822))
	for _, r := range s.source.CollectDue(last, now) {
		s.notify(r)
		s.source.Remove(r.ID)
		log.Info("reminder fired", "id", r.ID, "due", r.DueAt.Format(time.RFC822))
	}
	return now
}
