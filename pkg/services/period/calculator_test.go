package period

import (
	"testing"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeRange_Day(t *testing.T) {
	ref := time.Date(2024, time.September, 20, 14, 30, 0, 0, time.UTC)
	p := ComputeRange(ref, domain.GranularityDay)

	assert.Equal(t, date(2024, time.September, 20), p.From)
	assert.Equal(t, time.Date(2024, time.September, 20, 23, 59, 59, int(999*time.Millisecond), time.UTC), p.To)
	assert.Equal(t, 24*time.Hour-time.Millisecond, p.To.Sub(p.From))
}

func TestComputeRange_Week(t *testing.T) {
	tests := []struct {
		name     string
		ref      time.Time
		wantFrom time.Time
	}{
		{"friday", date(2024, time.September, 20), date(2024, time.September, 16)},
		{"monday", date(2024, time.September, 16), date(2024, time.September, 16)},
		{"sunday goes back six days", date(2024, time.September, 22), date(2024, time.September, 16)},
		{"across month boundary", date(2024, time.October, 2), date(2024, time.September, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputeRange(tt.ref, domain.GranularityWeek)

			assert.Equal(t, time.Monday, p.From.Weekday())
			assert.Equal(t, tt.wantFrom, p.From)
			assert.Equal(t, 7*24*time.Hour-time.Millisecond, p.To.Sub(p.From))
		})
	}
}

func TestComputeRange_Month(t *testing.T) {
	tests := []struct {
		name    string
		ref     time.Time
		wantEnd int
	}{
		{"september", date(2024, time.September, 20), 30},
		{"leap february", date(2024, time.February, 10), 29},
		{"non-leap february", date(2023, time.February, 10), 28},
		{"december", date(2024, time.December, 31), 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputeRange(tt.ref, domain.GranularityMonth)

			assert.Equal(t, 1, p.From.Day())
			assert.Equal(t, tt.wantEnd, p.To.Day())
			assert.Equal(t, tt.ref.Month(), p.From.Month())
			assert.Equal(t, tt.ref.Month(), p.To.Month())
		})
	}
}

func TestComputeRange_Year(t *testing.T) {
	p := ComputeRange(date(2024, time.June, 15), domain.GranularityYear)

	assert.Equal(t, date(2024, time.January, 1), p.From)
	assert.Equal(t, time.December, p.To.Month())
	assert.Equal(t, 31, p.To.Day())
	assert.Equal(t, 2024, p.To.Year())
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name        string
		ref         time.Time
		granularity domain.Granularity
		step        Step
		want        time.Time
	}{
		{"day next", date(2024, time.September, 20), domain.GranularityDay, StepNext, date(2024, time.September, 21)},
		{"day prev across month", date(2024, time.September, 1), domain.GranularityDay, StepPrev, date(2024, time.August, 31)},
		{"week next", date(2024, time.September, 20), domain.GranularityWeek, StepNext, date(2024, time.September, 27)},
		{"month next", date(2024, time.April, 10), domain.GranularityMonth, StepNext, date(2024, time.May, 10)},
		{"month next clamps to leap feb", date(2024, time.January, 31), domain.GranularityMonth, StepNext, date(2024, time.February, 29)},
		{"month next clamps to short month", date(2024, time.May, 31), domain.GranularityMonth, StepNext, date(2024, time.June, 30)},
		{"month prev clamps", date(2024, time.March, 31), domain.GranularityMonth, StepPrev, date(2024, time.February, 29)},
		{"month prev across year", date(2024, time.January, 15), domain.GranularityMonth, StepPrev, date(2023, time.December, 15)},
		{"year next", date(2024, time.June, 15), domain.GranularityYear, StepNext, date(2025, time.June, 15)},
		{"year next clamps leap day", date(2024, time.February, 29), domain.GranularityYear, StepNext, date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Advance(tt.ref, tt.granularity, tt.step))
		})
	}
}

func TestWeekNumber(t *testing.T) {
	// ISO-8601: the week containing the first Thursday is week 1.
	assert.Equal(t, 1, WeekNumber(date(2024, time.January, 1)))
	assert.Equal(t, 38, WeekNumber(date(2024, time.September, 20)))
	// Dec 29 2024 is a Sunday still inside ISO week 52.
	assert.Equal(t, 52, WeekNumber(date(2024, time.December, 29)))
	// Dec 30 2024 is a Monday belonging to week 1 of 2025.
	assert.Equal(t, 1, WeekNumber(date(2024, time.December, 30)))
}

func TestLabel(t *testing.T) {
	tests := []struct {
		granularity domain.Granularity
		want        string
	}{
		{domain.GranularityDay, "Fri, Sep 20, 2024"},
		{domain.GranularityWeek, "Week 38, 2024"},
		{domain.GranularityMonth, "September 2024"},
		{domain.GranularityYear, "2024"},
	}

	for _, tt := range tests {
		t.Run(string(tt.granularity), func(t *testing.T) {
			p := ComputeRange(date(2024, time.September, 20), tt.granularity)
			assert.Equal(t, tt.want, Label(p))
		})
	}
}

func TestLabelFor(t *testing.T) {
	p := ComputeRange(date(2024, time.September, 20), domain.GranularityMonth)

	require.Equal(t, "September 2024", LabelFor(domain.Series{}, p))

	// Data anchored in another month decides the label.
	s := domain.Series{{Time: date(2024, time.August, 3), Value: 1}}
	assert.Equal(t, "August 2024", LabelFor(s, p))
}
