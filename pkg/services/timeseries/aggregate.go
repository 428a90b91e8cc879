package timeseries

import (
	"math"
	"sort"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
)

// AggregateByDay collapses a series into one sample per UTC calendar day,
// valued at the arithmetic mean of that day's samples rounded to two
// decimals and stamped at noon UTC. Input order is irrelevant, output is
// ascending by day. Idempotent: a day holding a single sample keeps its
// value.
func AggregateByDay(s domain.Series) domain.Series {
	if len(s) == 0 {
		return domain.Series{}
	}

	type acc struct {
		sum   float64
		count int
	}
	byDay := make(map[time.Time]*acc)
	for _, sample := range s {
		y, m, d := sample.Time.UTC().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		a, ok := byDay[day]
		if !ok {
			a = &acc{}
			byDay[day] = a
		}
		a.sum += sample.Value
		a.count++
	}

	out := make(domain.Series, 0, len(byDay))
	for day, a := range byDay {
		mean := a.sum / float64(a.count)
		out = append(out, domain.Sample{
			Time:  day.Add(12 * time.Hour),
			Value: math.Round(mean*100) / 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}
