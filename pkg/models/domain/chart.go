package domain

import "time"

// ReconciledRow is one chart point: consumption at a normalized timestamp
// plus the ownership-scaled production summed per energy type. Values are
// raw scaled sums, no clamping.
type ReconciledRow struct {
	Time        time.Time
	Consumption float64
	Production  map[EnergyType]float64
}

// TransactionMarker annotates a chart with a buy/sell event inside the
// displayed period.
type TransactionMarker struct {
	Date          time.Time
	ProjectName   string
	Shares        int
	Direction     Direction
	PricePerShare float64
}

// ChartData is the fully assembled output of one chart build.
type ChartData struct {
	MeterID string
	Period  Period
	Label   string
	Rows    []ReconciledRow
	Markers []TransactionMarker
}
