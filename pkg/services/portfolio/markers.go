package portfolio

import (
	"sort"

	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
)

// MarkersInPeriod collects every transaction across all investments that
// falls inside the period, endpoints included, sorted ascending by date.
// Markers only annotate charts, they never feed reconciliation.
func MarkersInPeriod(investments []domain.Investment, p domain.Period) []domain.TransactionMarker {
	var markers []domain.TransactionMarker
	for _, inv := range investments {
		for _, tx := range inv.History {
			if !p.Contains(tx.Date) {
				continue
			}
			markers = append(markers, domain.TransactionMarker{
				Date:          tx.Date,
				ProjectName:   inv.ProjectName,
				Shares:        tx.Shares,
				Direction:     tx.Direction,
				PricePerShare: tx.PricePerShare,
			})
		}
	}
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Date.Before(markers[j].Date)
	})
	return markers
}
