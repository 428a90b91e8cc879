package chart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/cache"
	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchSeries(
	ctx context.Context,
	kind domain.SeriesKind,
	entity string,
	p domain.Period,
) (domain.Series, error) {
	args := m.Called(ctx, kind, entity, p)
	var s domain.Series
	if v := args.Get(0); v != nil {
		s = v.(domain.Series)
	}
	return s, args.Error(1)
}

func (m *mockFetcher) FetchDailyAggregate(
	ctx context.Context,
	kind domain.SeriesKind,
	entity string,
	year int,
	month time.Month,
) (domain.Series, error) {
	args := m.Called(ctx, kind, entity, year, month)
	var s domain.Series
	if v := args.Get(0); v != nil {
		s = v.(domain.Series)
	}
	return s, args.Error(1)
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func solarInvestment() domain.Investment {
	return domain.Investment{
		ProjectID:   "00012",
		ProjectName: "Solar Park",
		EnergyType:  domain.EnergySolar,
		History: []domain.Transaction{
			{Date: ts("2024-01-01T00:00:00Z"), Direction: domain.DirectionBuy, Shares: 2, PricePerShare: 50},
		},
	}
}

func dayRequest(investments ...domain.Investment) Request {
	return Request{
		MeterID:       "pod_42",
		Investments:   investments,
		ReferenceDate: ts("2024-06-01T09:30:00Z"),
		Granularity:   domain.GranularityDay,
	}
}

func TestBuild_DayChart(t *testing.T) {
	at := ts("2024-06-01T10:00:00Z")
	fetcher := &mockFetcher{}
	fetcher.On("FetchSeries", mock.Anything, domain.SeriesConsumption, "pod_42", mock.Anything).
		Return(domain.Series{{Time: at, Value: 10}}, nil)
	fetcher.On("FetchSeries", mock.Anything, domain.SeriesProduction, "00012", mock.Anything).
		Return(domain.Series{{Time: at, Value: 0.5}}, nil)

	ctrl := NewController(fetcher)
	data, err := ctrl.Build(context.Background(), dayRequest(solarInvestment()))

	require.NoError(t, err)
	assert.Equal(t, "pod_42", data.MeterID)
	assert.Equal(t, "Sat, Jun 1, 2024", data.Label)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, 10.0, data.Rows[0].Consumption)
	assert.Equal(t, 1.0, data.Rows[0].Production[domain.EnergySolar])
	assert.Empty(t, data.Markers)
	fetcher.AssertExpectations(t)
}

func TestBuild_InvalidGranularity(t *testing.T) {
	ctrl := NewController(&mockFetcher{})

	_, err := ctrl.Build(context.Background(), Request{
		MeterID:       "pod_42",
		ReferenceDate: ts("2024-06-01T09:30:00Z"),
		Granularity:   domain.Granularity("decade"),
	})

	assert.Error(t, err)
}

func TestBuild_ProductionFailureDegradesToEmpty(t *testing.T) {
	consumption := domain.Series{
		{Time: ts("2024-06-01T10:00:00Z"), Value: 10},
		{Time: ts("2024-06-01T10:15:00Z"), Value: 12},
	}
	fetcher := &mockFetcher{}
	fetcher.On("FetchSeries", mock.Anything, domain.SeriesConsumption, "pod_42", mock.Anything).
		Return(consumption, nil)
	fetcher.On("FetchSeries", mock.Anything, domain.SeriesProduction, "00012", mock.Anything).
		Return(nil, errors.New("backend down"))

	ctrl := NewController(fetcher)
	data, err := ctrl.Build(context.Background(), dayRequest(solarInvestment()))

	require.NoError(t, err)
	require.Len(t, data.Rows, 2)
	for _, row := range data.Rows {
		assert.Zero(t, row.Production[domain.EnergySolar])
	}
}

func TestBuild_ConsumptionFailureFailsBuild(t *testing.T) {
	fetcher := &mockFetcher{}
	fetcher.On("FetchSeries", mock.Anything, domain.SeriesConsumption, "pod_42", mock.Anything).
		Return(nil, errors.New("backend down"))

	ctrl := NewController(fetcher)
	_, err := ctrl.Build(context.Background(), dayRequest())

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrStaleRequest)
}

func monthRequest() Request {
	return Request{
		MeterID:       "pod_42",
		Investments:   []domain.Investment{solarInvestment()},
		ReferenceDate: ts("2024-06-10T09:30:00Z"),
		Granularity:   domain.GranularityMonth,
	}
}

func TestBuild_MonthUsesDailyAggregates(t *testing.T) {
	fetcher := &mockFetcher{}
	fetcher.On("FetchDailyAggregate", mock.Anything, domain.SeriesConsumption, "pod_42", 2024, time.June).
		Return(domain.Series{{Time: ts("2024-06-01T12:00:00Z"), Value: 3}}, nil)
	// The backend stamps its daily aggregates at midnight, not noon; the
	// rows must still line up.
	fetcher.On("FetchDailyAggregate", mock.Anything, domain.SeriesProduction, "00012", 2024, time.June).
		Return(domain.Series{{Time: ts("2024-06-01T00:00:00Z"), Value: 1.5}}, nil)

	ctrl := NewController(fetcher)
	data, err := ctrl.Build(context.Background(), monthRequest())

	require.NoError(t, err)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, ts("2024-06-01T00:00:00Z"), data.Rows[0].Time)
	assert.Equal(t, 3.0, data.Rows[0].Consumption)
	assert.Equal(t, 3.0, data.Rows[0].Production[domain.EnergySolar])
	fetcher.AssertExpectations(t)
}

func TestBuild_MonthFallsBackToClientAggregation(t *testing.T) {
	fetcher := &mockFetcher{}
	fetcher.On("FetchDailyAggregate", mock.Anything, domain.SeriesConsumption, "pod_42", 2024, time.June).
		Return(nil, errors.New("no daily endpoint"))
	fetcher.On("FetchSeries", mock.Anything, domain.SeriesConsumption, "pod_42", mock.Anything).
		Return(domain.Series{
			{Time: ts("2024-06-01T00:00:00Z"), Value: 2},
			{Time: ts("2024-06-01T00:15:00Z"), Value: 4},
		}, nil)
	fetcher.On("FetchDailyAggregate", mock.Anything, domain.SeriesProduction, "00012", 2024, time.June).
		Return(domain.Series{{Time: ts("2024-06-01T00:00:00Z"), Value: 1.5}}, nil)

	ctrl := NewController(fetcher)
	data, err := ctrl.Build(context.Background(), monthRequest())

	require.NoError(t, err)
	require.Len(t, data.Rows, 1)
	// Noon-stamped client-side mean merges with the midnight-stamped server
	// aggregate on the calendar day.
	assert.Equal(t, 3.0, data.Rows[0].Consumption)
	assert.Equal(t, 3.0, data.Rows[0].Production[domain.EnergySolar])
}

func TestBuild_MarkersWithinPeriod(t *testing.T) {
	inv := solarInvestment()
	inv.History = append(inv.History, domain.Transaction{
		Date: ts("2024-06-01T14:00:00Z"), Direction: domain.DirectionBuy, Shares: 3, PricePerShare: 52,
	})
	fetcher := &mockFetcher{}
	fetcher.On("FetchSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Series{}, nil)

	ctrl := NewController(fetcher)
	data, err := ctrl.Build(context.Background(), dayRequest(inv))

	require.NoError(t, err)
	require.Len(t, data.Markers, 1)
	assert.Equal(t, 3, data.Markers[0].Shares)
	assert.Equal(t, "Solar Park", data.Markers[0].ProjectName)
}

func TestBuild_SupersededRequestIsStale(t *testing.T) {
	fetcher := &mockFetcher{}
	ctrl := NewController(fetcher)

	var once sync.Once
	fetcher.On("FetchSeries", mock.Anything, domain.SeriesConsumption, "pod_42", mock.Anything).
		Run(func(mock.Arguments) {
			// A second build for the same meter starts while the first one
			// is still fetching.
			once.Do(func() {
				_, err := ctrl.Build(context.Background(), dayRequest())
				assert.NoError(t, err)
			})
		}).
		Return(domain.Series{}, nil)

	_, err := ctrl.Build(context.Background(), dayRequest())

	assert.ErrorIs(t, err, ErrStaleRequest)
}

func TestBuild_CacheAvoidsRefetch(t *testing.T) {
	at := ts("2024-06-01T10:00:00Z")
	fetcher := &mockFetcher{}
	fetcher.On("FetchSeries", mock.Anything, domain.SeriesConsumption, "pod_42", mock.Anything).
		Return(domain.Series{{Time: at, Value: 10}}, nil)
	fetcher.On("FetchSeries", mock.Anything, domain.SeriesProduction, "00012", mock.Anything).
		Return(domain.Series{{Time: at, Value: 0.5}}, nil)

	ctrl := NewController(fetcher, WithCache(cache.NewMemory()))

	first, err := ctrl.Build(context.Background(), dayRequest(solarInvestment()))
	require.NoError(t, err)
	second, err := ctrl.Build(context.Background(), dayRequest(solarInvestment()))
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	fetcher.AssertNumberOfCalls(t, "FetchSeries", 2)
}

func TestBuild_DifferentPeriodsMissCache(t *testing.T) {
	fetcher := &mockFetcher{}
	fetcher.On("FetchSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Series{}, nil)

	ctrl := NewController(fetcher, WithCache(cache.NewMemory()))

	_, err := ctrl.Build(context.Background(), dayRequest())
	require.NoError(t, err)

	req := dayRequest()
	req.ReferenceDate = ts("2024-06-02T09:30:00Z")
	_, err = ctrl.Build(context.Background(), req)
	require.NoError(t, err)

	fetcher.AssertNumberOfCalls(t, "FetchSeries", 2)
}
