// Package timeseries is the client for the metering backend. It retrieves
// consumption (load curve) and per-project production series, picking the
// retrieval strategy that matches the requested granularity: single-day
// queries for day views, bounded range queries for weeks, a split range for
// months, and the server-side monthly aggregate for years.
package timeseries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/adapters"
	"github.com/nicolasberthel/enerfolio/pkg/models/api"
	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
	"github.com/nicolasberthel/enerfolio/pkg/observability/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// The backend emits one reading per 15 minutes.
	samplesPerDay = 96

	defaultPageSize = 1000
	defaultTimeout  = 15 * time.Second

	dateLayout = "2006-01-02"
)

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	PageSize   int
	HTTPClient *http.Client
}

type Client struct {
	baseURL  string
	http     *http.Client
	pageSize int
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:  opts.BaseURL,
		http:     httpClient,
		pageSize: pageSize,
	}
}

// FetchSeries retrieves the series of one entity for a period, choosing the
// strategy by the period's granularity.
func (c *Client) FetchSeries(
	ctx context.Context,
	kind domain.SeriesKind,
	entity string,
	p domain.Period,
) (domain.Series, error) {
	switch p.Granularity {
	case domain.GranularityDay:
		return c.FetchDay(ctx, kind, entity, p.From)
	case domain.GranularityWeek:
		return c.FetchRange(ctx, kind, entity, p.From, p.To)
	case domain.GranularityMonth:
		return c.fetchMonth(ctx, kind, entity, p)
	case domain.GranularityYear:
		return c.FetchMonthlyAggregate(ctx, kind, entity, p.From.Year())
	}
	return nil, fmt.Errorf("unsupported granularity: %s", p.Granularity)
}

// FetchDay retrieves one calendar day of raw samples.
func (c *Client) FetchDay(
	ctx context.Context,
	kind domain.SeriesKind,
	entity string,
	date time.Time,
) (domain.Series, error) {
	query := url.Values{"date": {date.Format(dateLayout)}}
	return c.get(ctx, kind, entity, entityPath(kind, entity), query)
}

// FetchRange retrieves raw samples between two dates with the client's page
// ceiling.
func (c *Client) FetchRange(
	ctx context.Context,
	kind domain.SeriesKind,
	entity string,
	from, to time.Time,
) (domain.Series, error) {
	query := url.Values{
		"from_date": {from.Format(dateLayout)},
		"to_date":   {to.Format(dateLayout)},
		"page_size": {fmt.Sprint(c.pageSize)},
	}
	return c.get(ctx, kind, entity, entityPath(kind, entity), query)
}

// FetchMonthlyAggregate retrieves the server-side monthly aggregate for a
// year, one sample per month.
func (c *Client) FetchMonthlyAggregate(
	ctx context.Context,
	kind domain.SeriesKind,
	entity string,
	year int,
) (domain.Series, error) {
	query := url.Values{"year": {fmt.Sprint(year)}}
	return c.get(ctx, kind, entity, entityPath(kind, entity)+"/monthly", query)
}

// FetchDailyAggregate retrieves the server-side daily aggregate for one
// month, one sample per day.
func (c *Client) FetchDailyAggregate(
	ctx context.Context,
	kind domain.SeriesKind,
	entity string,
	year int,
	month time.Month,
) (domain.Series, error) {
	query := url.Values{
		"year":  {fmt.Sprint(year)},
		"month": {fmt.Sprintf("%02d", int(month))},
	}
	return c.get(ctx, kind, entity, entityPath(kind, entity)+"/daily", query)
}

// fetchMonth retrieves a month of raw samples. A full month exceeds the page
// ceiling, so the range is split at the 15th and both halves are fetched
// concurrently and concatenated in sub-range order. When either half fails
// the month is retried day by day.
func (c *Client) fetchMonth(
	ctx context.Context,
	kind domain.SeriesKind,
	entity string,
	p domain.Period,
) (domain.Series, error) {
	days := int(p.To.Sub(p.From).Hours()/24) + 1
	if days*samplesPerDay <= c.pageSize {
		return c.FetchRange(ctx, kind, entity, p.From, p.To)
	}

	mid := time.Date(p.From.Year(), p.From.Month(), 15, 0, 0, 0, 0, p.From.Location())

	var firstHalf, secondHalf domain.Series
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		firstHalf, err = c.FetchRange(gctx, kind, entity, p.From, mid)
		return err
	})
	g.Go(func() error {
		var err error
		secondHalf, err = c.FetchRange(gctx, kind, entity, mid.AddDate(0, 0, 1), p.To)
		return err
	})
	if err := g.Wait(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("entity", entity).
			Msg("split range fetch failed, retrying day by day")
		return c.FetchRangeByDays(ctx, kind, entity, p.From, p.To)
	}

	return append(firstHalf, secondHalf...), nil
}

// FetchRangeByDays decomposes [from, to] into calendar days and fetches each
// day concurrently, the fallback path when a bounded range query fails.
// Results are flattened in day order, not globally sorted; callers needing a
// total order sort downstream. One failed day aborts the whole batch.
func (c *Client) FetchRangeByDays(
	ctx context.Context,
	kind domain.SeriesKind,
	entity string,
	from, to time.Time,
) (domain.Series, error) {
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	zerolog.Ctx(ctx).Debug().
		Str("entity", entity).
		Int("days", len(days)).
		Msg("fetching series day by day")

	results := make([]domain.Series, len(days))
	g, gctx := errgroup.WithContext(ctx)
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			s, err := c.FetchDay(gctx, kind, entity, day)
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var flat domain.Series
	for _, s := range results {
		flat = append(flat, s...)
	}
	return flat, nil
}

func (c *Client) get(
	ctx context.Context,
	kind domain.SeriesKind,
	entity string,
	path string,
	query url.Values,
) (domain.Series, error) {
	start := time.Now()
	series, err := c.doGet(ctx, entity, path, query)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.ObserveFetch(string(kind), result, time.Since(start))
	return series, err
}

func (c *Client) doGet(
	ctx context.Context,
	entity string,
	path string,
	query url.Values,
) (domain.Series, error) {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &SeriesFetchError{Entity: entity, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &SeriesFetchError{Entity: entity, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &SeriesFetchError{Entity: entity, Status: resp.StatusCode}
	}

	samples, err := decodeSeries(resp.Body)
	if err != nil {
		return nil, &SeriesFetchError{Entity: entity, Err: err}
	}

	return adapters.MapApiSeriesToDomain(ctx, samples), nil
}

// decodeSeries accepts both payload forms the backend uses: the wrapped
// {"data": [...]} document and the bare array the aggregate endpoints return.
func decodeSeries(r io.Reader) ([]api.Sample, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding series payload: %w", err)
	}

	var bare []api.Sample
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	var wrapped api.SeriesResponse
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding series payload: %w", err)
	}
	return wrapped.Data, nil
}

func entityPath(kind domain.SeriesKind, entity string) string {
	if kind == domain.SeriesProduction {
		return fmt.Sprintf("projects/%s/production", url.PathEscape(entity))
	}
	return fmt.Sprintf("loadcurve/%s", url.PathEscape(entity))
}
