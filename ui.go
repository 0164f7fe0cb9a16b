package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"calrem/pkg/reminders"
	"calrem/pkg/view"
)

var (
	headerColor = color.New(color.FgHiWhite, color.Bold)
	todayColor  = color.New(color.FgHiBlue, color.Bold)
	markedColor = color.New(color.FgCyan)
	noticeColor = color.New(color.FgHiYellow, color.Bold)
)

func (a *app) printMonth() {
	m := view.Render(a.year, a.month, a.store, a.clk.Now())

	fmt.Println()
	headerColor.Println(" " + m.Title())
	headerColor.Println(" Mo Tu We Th Fr Sa Su")
	for _, week := range m.Weeks {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			cells = append(cells, renderCell(d))
		}
		fmt.Println(" " + strings.Join(cells, " "))
	}
	fmt.Printf(" total: %d | today: %d\n\n", m.Total, m.Today)
}

func renderCell(d view.Day) string {
	if d.Day == 0 {
		return "  "
	}
	cell := fmt.Sprintf("%2d", d.Day)
	switch {
	case d.IsToday:
		return todayColor.Sprint(cell)
	case d.HasReminders:
		return markedColor.Sprint(cell)
	default:
		return cell
	}
}

func printDay(date string, list []*reminders.Reminder) {
	if len(list) == 0 {
		fmt.Printf("no reminders on %s\n", date)
		return
	}
	table := uitable.New()
	table.AddRow("ID", "TIME", "TITLE")
	for _, r := range list {
		table.AddRow(r.ID, r.Time, r.Title)
	}
	fmt.Println(table)
}

func printHelp() {
	fmt.Println(`commands:
  next | prev | today      change the shown month
  day <d>                  list reminders for a day
  add <d> <hh[:mm]> <t>    add a reminder in the shown month
  bulk                     add many reminders, one per line
  rm <id>                  delete a reminder
  help | quit`)
}

// notifyDue prints the in-app notification for a fired reminder. Called
// from the scheduler goroutine between prompts.
func (a *app) notifyDue(r *reminders.Reminder) {
	fmt.Println()
	noticeColor.Printf("REMINDER  %s\n", r.Title)
	fmt.Printf("          %s %s\n", r.Date, r.Time)
}
