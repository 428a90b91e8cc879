// Package chart assembles everything one chart needs: it computes the
// period, fans out the consumption and production fetches, downsamples,
// reconciles ownership-scaled production against consumption and annotates
// the result with the period's transactions.
package chart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/cache"
	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
	"github.com/nicolasberthel/enerfolio/pkg/observability/metrics"
	"github.com/nicolasberthel/enerfolio/pkg/services/period"
	"github.com/nicolasberthel/enerfolio/pkg/services/portfolio"
	"github.com/nicolasberthel/enerfolio/pkg/services/reconcile"
	"github.com/nicolasberthel/enerfolio/pkg/services/timeseries"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrStaleRequest reports that a newer build for the same meter started
// while this one was in flight. The superseded result is discarded.
var ErrStaleRequest = errors.New("chart build superseded by a newer request")

// SeriesFetcher is the slice of the timeseries client the controller needs.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, kind domain.SeriesKind, entity string, p domain.Period) (domain.Series, error)
	FetchDailyAggregate(ctx context.Context, kind domain.SeriesKind, entity string, year int, month time.Month) (domain.Series, error)
}

// Request carries everything one chart build needs. Investments come from
// the caller (typically a portfolio fetch) rather than ambient state.
type Request struct {
	MeterID       string
	Investments   []domain.Investment
	ReferenceDate time.Time
	Granularity   domain.Granularity
}

type Controller struct {
	fetcher SeriesFetcher
	cache   cache.SeriesCache

	mu          sync.Mutex
	generations map[string]uint64
}

type Option func(*Controller)

// WithCache installs a series cache consulted before hitting the backend.
func WithCache(c cache.SeriesCache) Option {
	return func(ctrl *Controller) { ctrl.cache = c }
}

func NewController(fetcher SeriesFetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher:     fetcher,
		generations: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Build runs one full chart assembly. The consumption fetch and every
// project's production fetch run concurrently; a single project failing
// degrades to an empty series while a consumption failure fails the build.
func (c *Controller) Build(ctx context.Context, req Request) (domain.ChartData, error) {
	start := time.Now()
	data, err := c.build(ctx, req)

	result := metrics.ResultSuccess
	switch {
	case errors.Is(err, ErrStaleRequest):
		result = metrics.ResultStale
	case err != nil:
		result = metrics.ResultError
	}
	metrics.ObserveChartBuild(string(req.Granularity), result, time.Since(start))

	return data, err
}

func (c *Controller) build(ctx context.Context, req Request) (domain.ChartData, error) {
	logger := zerolog.Ctx(ctx)

	if !req.Granularity.IsValid() {
		return domain.ChartData{}, errors.New("invalid granularity")
	}

	gen := c.beginBuild(req.MeterID)
	p := period.ComputeRange(req.ReferenceDate, req.Granularity)

	var consumption domain.Series
	productions := make([]domain.Series, len(req.Investments))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		consumption, err = c.fetchConsumption(gctx, req.MeterID, p)
		return err
	})

	for i, inv := range req.Investments {
		i, inv := i, inv
		g.Go(func() error {
			series, err := c.fetchProduction(gctx, inv.ProjectID, p)
			if err != nil {
				// Partial-results policy: this project contributes
				// nothing, the chart still renders.
				logger.Warn().Err(err).
					Str("project", inv.ProjectID).
					Msg("production fetch failed, treating series as empty")
				return nil
			}
			productions[i] = series
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.ChartData{}, err
	}

	if !c.isCurrent(req.MeterID, gen) {
		return domain.ChartData{}, ErrStaleRequest
	}

	holdings := make([]reconcile.Holding, len(req.Investments))
	for i, inv := range req.Investments {
		holdings[i] = reconcile.Holding{Investment: inv, Production: productions[i]}
	}

	return domain.ChartData{
		MeterID: req.MeterID,
		Period:  p,
		Label:   period.LabelFor(consumption, p),
		Rows:    reconcile.Reconcile(consumption, holdings, req.Granularity),
		Markers: portfolio.MarkersInPeriod(req.Investments, p),
	}, nil
}

// fetchConsumption retrieves the meter's load curve for the period. Month
// views are served one sample per day.
func (c *Controller) fetchConsumption(ctx context.Context, meterID string, p domain.Period) (domain.Series, error) {
	key := cache.NewKey(meterID, domain.SeriesConsumption, p)
	if s, ok := c.cacheGet(key); ok {
		return s, nil
	}

	var (
		series domain.Series
		err    error
	)
	if p.Granularity == domain.GranularityMonth {
		series, err = c.fetchDailyConsumption(ctx, meterID, p)
	} else {
		series, err = c.fetcher.FetchSeries(ctx, domain.SeriesConsumption, meterID, p)
	}
	if err != nil {
		return nil, err
	}

	c.cachePut(key, series)
	return series, nil
}

// fetchDailyConsumption serves a month view from the server-side daily
// aggregate, the same endpoint family production uses, so both series carry
// one timestamp convention. When that endpoint fails the raw samples are
// fetched and collapsed to daily means client-side instead.
func (c *Controller) fetchDailyConsumption(ctx context.Context, meterID string, p domain.Period) (domain.Series, error) {
	series, err := c.fetcher.FetchDailyAggregate(
		ctx, domain.SeriesConsumption, meterID, p.From.Year(), p.From.Month())
	if err == nil {
		return series, nil
	}
	zerolog.Ctx(ctx).Warn().Err(err).
		Str("meter", meterID).
		Msg("daily aggregate unavailable, aggregating raw samples client-side")

	raw, err := c.fetcher.FetchSeries(ctx, domain.SeriesConsumption, meterID, p)
	if err != nil {
		return nil, err
	}
	return timeseries.AggregateByDay(raw), nil
}

// fetchProduction retrieves one project's production. Month views use the
// server-side daily aggregate, which already returns one sample per day.
func (c *Controller) fetchProduction(ctx context.Context, projectID string, p domain.Period) (domain.Series, error) {
	key := cache.NewKey(projectID, domain.SeriesProduction, p)
	if s, ok := c.cacheGet(key); ok {
		return s, nil
	}

	var (
		series domain.Series
		err    error
	)
	if p.Granularity == domain.GranularityMonth {
		series, err = c.fetcher.FetchDailyAggregate(
			ctx, domain.SeriesProduction, projectID, p.From.Year(), p.From.Month())
	} else {
		series, err = c.fetcher.FetchSeries(ctx, domain.SeriesProduction, projectID, p)
	}
	if err != nil {
		return nil, err
	}

	c.cachePut(key, series)
	return series, nil
}

func (c *Controller) cacheGet(k cache.Key) (domain.Series, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(k)
}

func (c *Controller) cachePut(k cache.Key, s domain.Series) {
	if c.cache == nil {
		return
	}
	c.cache.Put(k, s)
}

func (c *Controller) beginBuild(meterID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[meterID]++
	return c.generations[meterID]
}

func (c *Controller) isCurrent(meterID string, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[meterID] == gen
}
