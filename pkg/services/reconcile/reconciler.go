// Package reconcile merges one consumption series with any number of
// ownership-scaled production series into a single ordered table of chart
// rows.
package reconcile

import (
	"sort"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
	"github.com/nicolasberthel/enerfolio/pkg/services/ownership"
)

// Holding pairs an investment with the production series fetched for its
// project. An empty series is a valid holding (the project's fetch failed or
// returned nothing) and simply contributes zero everywhere.
type Holding struct {
	Investment domain.Investment
	Production domain.Series
}

// Reconcile builds one row per distinct normalized consumption timestamp and
// folds every holding's production into it, scaled by the shares held at the
// sample's own timestamp. Production samples without a matching consumption
// row are dropped, never invented as rows. The result is ascending by
// timestamp. Pure: no I/O, inputs are not mutated.
func Reconcile(
	consumption domain.Series,
	holdings []Holding,
	g domain.Granularity,
) []domain.ReconciledRow {
	rows := make(map[int64]*domain.ReconciledRow, len(consumption))

	for _, sample := range consumption {
		key := normalizeKey(sample.Time, g)
		if _, exists := rows[key]; exists {
			// Duplicate consumption key: first occurrence wins.
			continue
		}
		rows[key] = &domain.ReconciledRow{
			Time:        time.UnixMilli(key).UTC(),
			Consumption: sample.Value,
			Production:  make(map[domain.EnergyType]float64),
		}
	}

	for _, h := range holdings {
		ledger := ownership.NewLedger(h.Investment.History)
		for _, sample := range h.Production {
			row, ok := rows[normalizeKey(sample.Time, g)]
			if !ok {
				continue
			}
			shares := ledger.SharesHeldAt(sample.Time)
			if shares == 0 {
				continue
			}
			row.Production[h.Investment.EnergyType] += sample.Value * float64(shares)
		}
	}

	out := make([]domain.ReconciledRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// normalizeKey maps a timestamp to its merge key: the UTC instant in unix
// milliseconds. Pre-aggregated views truncate further: month views to the
// UTC calendar day and year views to the first of the month, so daily and
// monthly aggregates align whatever within-bucket instant stamped them.
func normalizeKey(t time.Time, g domain.Granularity) int64 {
	u := t.UTC()
	switch g {
	case domain.GranularityMonth:
		u = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	case domain.GranularityYear:
		u = time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return u.UnixMilli()
}
