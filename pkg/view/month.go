// Package view derives display-ready month data from the reminder store.
package view

import (
	"fmt"
	"time"

	"calrem/pkg/reminders"
)

// DayQuerier is the read-only slice of the store the view model needs.
type DayQuerier interface {
	HasAnyForDate(date string) bool
	CountTotal() int
	CountForDate(date string) int
}

// Day is one calendar grid cell. Day zero marks a padding cell outside the
// month.
type Day struct {
	Day          int
	IsToday      bool
	HasReminders bool
}

// Month is the rendered grid plus aggregate counts for one year/month.
type Month struct {
	Year  int
	Month time.Month
	// Weeks holds 7-column rows, Monday first.
	Weeks [][]Day
	// Total is the store-wide reminder count; Today counts reminders on
	// today's calendar date.
	Total int
	Today int
}

// Title returns the "January 2006" style heading for the month.
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Render computes the grid and aggregates for the given month. Today is
// determined from now by calendar date only.
func Render(year int, month time.Month, q DayQuerier, now time.Time) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	// time.Weekday counts from Sunday; shift so Monday lands in column 0.
	offset := (int(first.Weekday()) + 6) % 7
	rows := (offset + daysInMonth + 6) / 7
	todayKey := reminders.DateKey(now)

	m := Month{
		Year:  year,
		Month: month,
		Weeks: make([][]Day, 0, rows),
		Total: q.CountTotal(),
		Today: q.CountForDate(todayKey),
	}
	for row := 0; row < rows; row++ {
		week := make([]Day, 7)
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > daysInMonth {
				continue
			}
			key := reminders.DateKey(first.AddDate(0, 0, day-1))
			week[col] = Day{
				Day:          day,
				IsToday:      key == todayKey,
				HasReminders: q.HasAnyForDate(key),
			}
		}
		m.Weeks = append(m.Weeks, week)
	}
	return m
}
