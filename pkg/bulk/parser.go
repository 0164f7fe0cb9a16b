// Package bulk parses free-form multi-line reminder entry text.
//
// Each non-blank line is expected as "<day> <hour>[:<minute>] <title>",
// resolved against a target month and year. Parsing has no side effects;
// the caller decides what to do with candidates and per-line errors.
package bulk

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Line grammar: 1-2 digit day, 1-2 digit hour, optional minute after a
// colon (or directly appended), then the title.
var lineRe = regexp.MustCompile(`^(\d{1,2})\s+(\d{1,2}):?(\d{0,2})\s+(.+)$`)

// ErrorKind discriminates why a line was rejected.
type ErrorKind string

const (
	KindMalformedLine ErrorKind = "malformed_line"
	KindInvalidDate   ErrorKind = "invalid_date"
	KindPastDateTime  ErrorKind = "past_datetime"
)

// ParseError describes a rejected input line.
type ParseError struct {
	Kind ErrorKind
	Line string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindMalformedLine:
		return "malformed line: " + e.Line
	case KindInvalidDate:
		return "invalid date: " + e.Line
	case KindPastDateTime:
		return "time already passed: " + e.Line
	default:
		return "bad line: " + e.Line
	}
}

// Candidate is a successfully parsed, future-dated reminder line.
type Candidate struct {
	Day    int
	Hour   int
	Minute int
	Title  string
	DueAt  time.Time
}

// Result holds the outcome for one input line: either Candidate or Err is
// set, never both.
type Result struct {
	Line      string
	Candidate *Candidate
	Err       *ParseError
}

// Parse resolves every non-blank line of text against the given month and
// year. Results preserve input order. Lines that resolve to a moment at or
// before now come back as PastDateTime errors rather than being dropped.
func Parse(text string, month time.Month, year int, now time.Time) []Result {
	var results []Result
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		results = append(results, parseLine(line, month, year, now))
	}
	return results
}

func parseLine(line string, month time.Month, year int, now time.Time) Result {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Result{Line: line, Err: &ParseError{Kind: KindMalformedLine, Line: line}}
	}

	day, _ := strconv.Atoi(m[1])
	hour, _ := strconv.Atoi(m[2])
	minute := 0
	if m[3] != "" {
		minute, _ = strconv.Atoi(m[3])
	}
	title := strings.TrimSpace(m[4])

	dueAt, ok := compose(year, month, day, hour, minute, now.Location())
	if !ok {
		return Result{Line: line, Err: &ParseError{Kind: KindInvalidDate, Line: line}}
	}
	if !dueAt.After(now) {
		return Result{Line: line, Err: &ParseError{Kind: KindPastDateTime, Line: line}}
	}

	return Result{Line: line, Candidate: &Candidate{
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Title:  title,
		DueAt:  dueAt,
	}}
}

// compose builds the wall-clock moment, rejecting out-of-range components.
// time.Date normalizes overflow (June 31 becomes July 1), so the result is
// checked against the requested day and month.
func compose(year int, month time.Month, day, hour, minute int, loc *time.Location) (time.Time, bool) {
	if day < 1 || hour > 23 || minute > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)
	if t.Day() != day || t.Month() != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
