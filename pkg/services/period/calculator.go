// Package period turns a reference date and a display granularity into the
// concrete calendar interval to fetch and chart, and produces the labels
// shown while paging through periods.
package period

import (
	"fmt"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
)

type Step string

const (
	StepPrev Step = "prev"
	StepNext Step = "next"
)

// ComputeRange derives the closed [from, to] interval containing ref for the
// given granularity. Weeks are ISO weeks, Monday through Sunday. Both
// endpoints are inclusive to millisecond precision, in ref's location.
func ComputeRange(ref time.Time, g domain.Granularity) domain.Period {
	var from, to time.Time
	loc := ref.Location()
	y, m, d := ref.Date()

	switch g {
	case domain.GranularityDay:
		from = time.Date(y, m, d, 0, 0, 0, 0, loc)
		to = endOfDay(from)
	case domain.GranularityWeek:
		// Days elapsed since Monday; Sunday counts as 6.
		sinceMonday := (int(ref.Weekday()) + 6) % 7
		from = time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, loc)
		to = endOfDay(from.AddDate(0, 0, 6))
	case domain.GranularityMonth:
		from = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		to = endOfDay(time.Date(y, m+1, 0, 0, 0, 0, 0, loc))
	case domain.GranularityYear:
		from = time.Date(y, 1, 1, 0, 0, 0, 0, loc)
		to = endOfDay(time.Date(y, 12, 31, 0, 0, 0, 0, loc))
	}

	return domain.Period{Granularity: g, From: from, To: to}
}

// Advance shifts ref by exactly one unit of the granularity. Advancing by a
// month or a year from a day the target month does not have clamps to that
// month's last day (Jan 31 -> Feb 28/29), it never rolls into the following
// month.
func Advance(ref time.Time, g domain.Granularity, step Step) time.Time {
	delta := 1
	if step == StepPrev {
		delta = -1
	}

	switch g {
	case domain.GranularityDay:
		return ref.AddDate(0, 0, delta)
	case domain.GranularityWeek:
		return ref.AddDate(0, 0, 7*delta)
	case domain.GranularityMonth:
		return shiftClamped(ref, 0, delta)
	case domain.GranularityYear:
		return shiftClamped(ref, delta, 0)
	}
	return ref
}

func shiftClamped(ref time.Time, years, months int) time.Time {
	y, m, d := ref.Date()
	target := time.Date(y+years, m+time.Month(months), 1, 0, 0, 0, 0, ref.Location())
	last := daysIn(target.Year(), target.Month(), ref.Location())
	if d > last {
		d = last
	}
	h, min, s := ref.Clock()
	return time.Date(target.Year(), target.Month(), d, h, min, s, ref.Nanosecond(), ref.Location())
}

// WeekNumber returns the ISO-8601 week number of t.
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// Label renders the human-readable name of a period.
func Label(p domain.Period) string {
	switch p.Granularity {
	case domain.GranularityDay:
		return p.From.Format("Mon, Jan 2, 2006")
	case domain.GranularityWeek:
		return fmt.Sprintf("Week %d, %d", WeekNumber(p.From), p.From.Year())
	case domain.GranularityMonth:
		return p.From.Format("January 2006")
	case domain.GranularityYear:
		return p.From.Format("2006")
	}
	return p.From.Format("2006-01-02")
}

// LabelFor labels a period from the data actually loaded: the first sample
// decides, falling back to the requested period when the series is empty.
func LabelFor(s domain.Series, p domain.Period) string {
	if len(s) == 0 {
		return Label(p)
	}
	anchored := domain.Period{Granularity: p.Granularity, From: s[0].Time, To: p.To}
	return Label(anchored)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
