package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"calrem/pkg/bulk"
	"calrem/pkg/reminders"
)

// app is the interactive terminal surface over the store. It tracks only
// which month is displayed; all reminder state lives in the store.
type app struct {
	store *reminders.Store
	clk   clock.Clock
	year  int
	month time.Month
}

func newApp(store *reminders.Store, clk clock.Clock) *app {
	now := clk.Now()
	return &app{store: store, clk: clk, year: now.Year(), month: now.Month()}
}

// run serves commands from in until ctx is canceled or input ends.
func (a *app) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	a.printMonth()
	printHelp()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := a.dispatch(strings.TrimSpace(line), lines); quit {
				return nil
			}
		}
	}
}

func (a *app) dispatch(line string, lines <-chan string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "q", "quit", "exit":
		return true
	case "h", "help":
		printHelp()
	case "n", "next":
		a.month, a.year = nextMonth(a.month, a.year)
		a.printMonth()
	case "p", "prev":
		a.month, a.year = prevMonth(a.month, a.year)
		a.printMonth()
	case "t", "today":
		now := a.clk.Now()
		a.year, a.month = now.Year(), now.Month()
		a.printMonth()
	case "d", "day":
		a.showDay(fields[1:])
	case "add":
		a.addOne(strings.TrimSpace(strings.TrimPrefix(line, fields[0])))
	case "rm":
		a.removeOne(fields[1:])
	case "bulk":
		a.bulkAdd(lines)
	default:
		fmt.Println("unknown command, type 'help'")
	}
	return false
}

// addOne handles "add <day> <hour>[:<minute>] <title>", resolved in the
// displayed month. The single-add path reuses the bulk line grammar.
func (a *app) addOne(rest string) {
	results := bulk.Parse(rest, a.month, a.year, a.clk.Now())
	if len(results) == 0 {
		fmt.Println("usage: add <day> <hour>[:<minute>] <title>")
		return
	}
	res := results[0]
	if res.Err != nil {
		fmt.Println(res.Err.Error())
		return
	}
	added, err := a.store.Add(res.Candidate.Title, res.Candidate.DueAt)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("added #%d on %s at %s\n", added.ID, added.Date, added.Time)
	a.printMonth()
}

func (a *app) showDay(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: day <day-of-month>")
		return
	}
	day, err := strconv.Atoi(args[0])
	first := time.Date(a.year, a.month, 1, 0, 0, 0, 0, a.clk.Now().Location())
	if err != nil || day < 1 || day > first.AddDate(0, 1, -1).Day() {
		fmt.Printf("no such day in %s %d\n", a.month, a.year)
		return
	}
	date := reminders.DateKey(first.AddDate(0, 0, day-1))
	printDay(date, a.store.ListForDate(date))
}

func (a *app) removeOne(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: rm <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("usage: rm <id>")
		return
	}
	if !a.store.Remove(id) {
		fmt.Printf("no reminder #%d\n", id)
		return
	}
	fmt.Printf("removed #%d\n", id)
	a.printMonth()
}

// bulkAdd reads one reminder per line until a lone "." and commits every
// valid line in a single store write.
func (a *app) bulkAdd(lines <-chan string) {
	fmt.Printf("one reminder per line for %s %d (<day> <hour>[:<minute>] <title>), end with '.'\n", a.month, a.year)

	var b strings.Builder
	for line := range lines {
		if strings.TrimSpace(line) == "." {
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	results := bulk.Parse(b.String(), a.month, a.year, a.clk.Now())
	if len(results) == 0 {
		fmt.Println("nothing to add")
		return
	}

	var items []reminders.NewReminder
	var errs []*bulk.ParseError
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
			continue
		}
		items = append(items, reminders.NewReminder{
			Title: res.Candidate.Title,
			DueAt: res.Candidate.DueAt,
		})
	}

	accepted := a.store.BulkCommit(items)
	fmt.Printf("added %d, rejected %d\n", accepted, len(errs))
	for i, e := range errs {
		if i == 3 {
			fmt.Printf("  ... and %d more\n", len(errs)-3)
			break
		}
		fmt.Println("  - " + e.Error())
	}
	if accepted > 0 {
		a.printMonth()
	}
}

func nextMonth(m time.Month, year int) (time.Month, int) {
	if m == time.December {
		return time.January, year + 1
	}
	return m + 1, year
}

func prevMonth(m time.Month, year int) (time.Month, int) {
	if m == time.January {
		return time.December, year - 1
	}
	return m - 1, year
}
