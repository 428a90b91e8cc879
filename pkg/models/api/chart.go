package api

// ChartRow is one reconciled point as served by the chart endpoint.
// Production is keyed by energy type.
type ChartRow struct {
	Timestamp   string             `json:"timestamp"`
	Consumption float64            `json:"consumption"`
	Production  map[string]float64 `json:"production"`
}

type ChartMarker struct {
	Date          string  `json:"date"`
	ProjectName   string  `json:"project_name"`
	Shares        int     `json:"shares"`
	Direction     string  `json:"direction"`
	PricePerShare float64 `json:"price_per_share"`
}

type Chart struct {
	MeterID     string        `json:"meter_id"`
	Granularity string        `json:"granularity"`
	From        string        `json:"from"`
	To          string        `json:"to"`
	Label       string        `json:"label"`
	Rows        []ChartRow    `json:"rows"`
	Markers     []ChartMarker `json:"markers"`
}
