package timeseries

import (
	"testing"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAggregateByDay_MeanPerDay(t *testing.T) {
	in := domain.Series{
		{Time: ts("2024-01-01T00:00:00Z"), Value: 2},
		{Time: ts("2024-01-01T12:00:00Z"), Value: 4},
	}

	out := AggregateByDay(in)

	require.Len(t, out, 1)
	assert.Equal(t, ts("2024-01-01T12:00:00Z"), out[0].Time)
	assert.Equal(t, 3.0, out[0].Value)
}

func TestAggregateByDay_MultipleDaysSorted(t *testing.T) {
	// Unordered input spanning three days.
	in := domain.Series{
		{Time: ts("2024-01-03T08:00:00Z"), Value: 9},
		{Time: ts("2024-01-01T10:00:00Z"), Value: 1},
		{Time: ts("2024-01-02T06:00:00Z"), Value: 2},
		{Time: ts("2024-01-02T18:00:00Z"), Value: 4},
	}

	out := AggregateByDay(in)

	require.Len(t, out, 3)
	assert.Equal(t, ts("2024-01-01T12:00:00Z"), out[0].Time)
	assert.Equal(t, 1.0, out[0].Value)
	assert.Equal(t, ts("2024-01-02T12:00:00Z"), out[1].Time)
	assert.Equal(t, 3.0, out[1].Value)
	assert.Equal(t, ts("2024-01-03T12:00:00Z"), out[2].Time)
	assert.Equal(t, 9.0, out[2].Value)
}

func TestAggregateByDay_RoundsToTwoDecimals(t *testing.T) {
	in := domain.Series{
		{Time: ts("2024-01-01T00:00:00Z"), Value: 1},
		{Time: ts("2024-01-01T08:00:00Z"), Value: 1},
		{Time: ts("2024-01-01T16:00:00Z"), Value: 2},
	}

	out := AggregateByDay(in)

	require.Len(t, out, 1)
	assert.Equal(t, 1.33, out[0].Value)
}

func TestAggregateByDay_Idempotent(t *testing.T) {
	in := domain.Series{
		{Time: ts("2024-01-01T00:15:00Z"), Value: 2.5},
		{Time: ts("2024-01-01T23:45:00Z"), Value: 7.5},
		{Time: ts("2024-01-02T03:00:00Z"), Value: 4},
	}

	once := AggregateByDay(in)
	twice := AggregateByDay(once)

	assert.Equal(t, once, twice)
}

func TestAggregateByDay_Empty(t *testing.T) {
	assert.Empty(t, AggregateByDay(nil))
	assert.Empty(t, AggregateByDay(domain.Series{}))
}

func TestAggregateByDay_UTCDayBoundary(t *testing.T) {
	// 23:30+02:00 is 21:30Z, still the previous UTC day.
	local := time.FixedZone("CEST", 2*60*60)
	in := domain.Series{
		{Time: time.Date(2024, time.June, 2, 1, 30, 0, 0, local), Value: 6},
		{Time: ts("2024-06-01T21:00:00Z"), Value: 2},
	}

	out := AggregateByDay(in)

	require.Len(t, out, 1)
	assert.Equal(t, ts("2024-06-01T12:00:00Z"), out[0].Time)
	assert.Equal(t, 4.0, out[0].Value)
}
