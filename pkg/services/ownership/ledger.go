// Package ownership reconstructs how many shares of a project were held at
// any instant by replaying that investment's transaction history.
package ownership

import (
	"sort"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
)

// Ledger precomputes the running share total of one investment so lookups
// per sample timestamp are a binary search instead of a full replay.
type Ledger struct {
	dates  []time.Time
	totals []int
}

// NewLedger builds a ledger from a transaction history. The history is
// copied and sorted by date; storage order is not trusted. Same-date
// transactions keep their stored relative order.
func NewLedger(history []domain.Transaction) *Ledger {
	sorted := make([]domain.Transaction, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	l := &Ledger{
		dates:  make([]time.Time, len(sorted)),
		totals: make([]int, len(sorted)),
	}
	running := 0
	for i, tx := range sorted {
		if tx.Direction == domain.DirectionSell {
			running -= tx.Shares
		} else {
			running += tx.Shares
		}
		l.dates[i] = tx.Date
		l.totals[i] = running
	}
	return l
}

// SharesHeldAt returns the net shares held at t: buys up to and including t
// minus sells up to and including t, floored at zero. A negative running
// total means inconsistent source data and is clamped rather than raised.
func (l *Ledger) SharesHeldAt(t time.Time) int {
	// First transaction strictly after t; the one before it decides.
	idx := sort.Search(len(l.dates), func(i int) bool {
		return l.dates[i].After(t)
	})
	if idx == 0 {
		return 0
	}
	total := l.totals[idx-1]
	if total < 0 {
		return 0
	}
	return total
}
