package domain

import "time"

// Sample is a single meter or production reading. Timestamps come from the
// backend as ISO-8601 strings and are parsed into UTC instants; values are
// kWh for raw series and averaged kWh for pre-aggregated ones.
type Sample struct {
	Time  time.Time
	Value float64
}

// Series is a sequence of samples, nominally ascending by timestamp. The
// backend does not guarantee ordering, consumers sort where it matters.
type Series []Sample

type SeriesKind string

const (
	SeriesConsumption SeriesKind = "consumption"
	SeriesProduction  SeriesKind = "production"
)
