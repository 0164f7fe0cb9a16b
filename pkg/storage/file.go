// Package storage persists the reminder collection as a single
// pretty-printed JSON file, with the id counter in a sibling file.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"calrem/pkg/log"
	"calrem/pkg/reminders"
)

const (
	remindersKey = "reminders.json"
	counterKey   = "next_id"
)

// Files is a diskv-backed reminders.Persistence. All keys live flat under
// the data directory.
type Files struct {
	d *diskv.Diskv
}

func New(dataDir string) *Files {
	return &Files{d: diskv.New(diskv.Options{
		BasePath:     dataDir,
		Transform:    func(string) []string { return nil },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// Load reads the persisted collection and id counter. Any failure is
// logged and degraded to an empty result so startup never depends on the
// file being present or well-formed. Individual records that fail
// validation are skipped.
func (f *Files) Load() ([]*reminders.Reminder, int64) {
	return f.loadReminders(), f.loadCounter()
}

func (f *Files) loadReminders() []*reminders.Reminder {
	data, err := f.d.Read(remindersKey)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Error("read reminders file", err)
		}
		return nil
	}

	var raw []*reminders.Reminder
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Error("decode reminders file, starting empty", err)
		return nil
	}

	list := make([]*reminders.Reminder, 0, len(raw))
	for _, r := range raw {
		if r == nil || strings.TrimSpace(r.Title) == "" || r.DueAt.IsZero() {
			log.Info("skipping invalid persisted reminder")
			continue
		}
		// The datetime field is authoritative; the display strings are
		// recomputed rather than trusted.
		r.SyncDerived()
		list = append(list, r)
	}
	return list
}

func (f *Files) loadCounter() int64 {
	data, err := f.d.Read(counterKey)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Error("read id counter", err)
		}
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		log.Error("parse id counter", err)
		return 0
	}
	return n
}

// Save rewrites the full collection and the id counter. The collection
// file is a pretty-printed UTF-8 JSON array, kept diffable.
func (f *Files) Save(list []*reminders.Reminder, nextID int64) error {
	if list == nil {
		list = []*reminders.Reminder{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode reminders: %w", err)
	}
	if err := f.d.Write(remindersKey, data); err != nil {
		return fmt.Errorf("write reminders file: %w", err)
	}
	if err := f.d.Write(counterKey, []byte(strconv.FormatInt(nextID, 10))); err != nil {
		return fmt.Errorf("write id counter: %w", err)
	}
	return nil
}
