package adapters

import (
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/models/api"
	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
)

func MapDomainChartToApi(c domain.ChartData) api.Chart {
	rows := make([]api.ChartRow, 0, len(c.Rows))
	for _, r := range c.Rows {
		production := make(map[string]float64, len(r.Production))
		for et, v := range r.Production {
			production[string(et)] = v
		}
		rows = append(rows, api.ChartRow{
			Timestamp:   r.Time.UTC().Format(time.RFC3339),
			Consumption: r.Consumption,
			Production:  production,
		})
	}

	markers := make([]api.ChartMarker, 0, len(c.Markers))
	for _, m := range c.Markers {
		markers = append(markers, api.ChartMarker{
			Date:          m.Date.UTC().Format(time.RFC3339),
			ProjectName:   m.ProjectName,
			Shares:        m.Shares,
			Direction:     string(m.Direction),
			PricePerShare: m.PricePerShare,
		})
	}

	return api.Chart{
		MeterID:     c.MeterID,
		Granularity: string(c.Period.Granularity),
		From:        c.Period.From.UTC().Format(time.RFC3339),
		To:          c.Period.To.UTC().Format(time.RFC3339),
		Label:       c.Label,
		Rows:        rows,
		Markers:     markers,
	}
}
