package domain

import (
	"fmt"
	"time"
)

// Granularity is the display time bucket for charts and fetches.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return true
	}
	return false
}

func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(s)
	if !g.IsValid() {
		return "", fmt.Errorf("unknown granularity: %q", s)
	}
	return g, nil
}

// Period is a closed calendar interval, both endpoints inclusive to
// millisecond precision.
type Period struct {
	Granularity Granularity
	From        time.Time
	To          time.Time
}

// Contains reports whether t falls inside the period, endpoints included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && !t.After(p.To)
}
