// Package cache holds fetched series for reuse across chart builds. Entries
// are keyed by a typed (entity, period, granularity) record and are replaced
// wholesale, never mutated in place.
package cache

import (
	"sync"

	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
)

// Key identifies one cached series. PeriodStart is the period's From in unix
// milliseconds, which together with the granularity pins the exact interval.
type Key struct {
	Entity      string
	Kind        domain.SeriesKind
	PeriodStart int64
	Granularity domain.Granularity
}

func NewKey(entity string, kind domain.SeriesKind, p domain.Period) Key {
	return Key{
		Entity:      entity,
		Kind:        kind,
		PeriodStart: p.From.UnixMilli(),
		Granularity: p.Granularity,
	}
}

// SeriesCache is the lookup the chart controller consults before fetching.
type SeriesCache interface {
	Get(k Key) (domain.Series, bool)
	Put(k Key, s domain.Series)
}

// Memory is an in-process SeriesCache safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[Key]domain.Series
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[Key]domain.Series)}
}

func (m *Memory) Get(k Key) (domain.Series, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.entries[k]
	return s, ok
}

// Put stores a copy of the series under k, replacing any previous entry.
func (m *Memory) Put(k Key, s domain.Series) {
	entry := make(domain.Series, len(s))
	copy(entry, s)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[k] = entry
}

// Invalidate drops every entry whose period start differs from the given
// period, used when the caller navigates away from a period.
func (m *Memory) Invalidate(p domain.Period) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if k.PeriodStart != p.From.UnixMilli() || k.Granularity != p.Granularity {
			delete(m.entries, k)
		}
	}
}
