package adapters

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/models/api"
	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Timestamp layouts seen in backend payloads. The first match wins.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses a backend timestamp into a UTC instant.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", s)
}

func MapApiSampleToDomain(s api.Sample) (domain.Sample, error) {
	ts, err := ParseTimestamp(s.Timestamp)
	if err != nil {
		return domain.Sample{}, err
	}
	v, err := strconv.ParseFloat(s.Value, 64)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("malformed sample value %q at %s: %w", s.Value, s.Timestamp, err)
	}
	return domain.Sample{Time: ts, Value: v}, nil
}

// MapApiSeriesToDomain converts a wire series, dropping samples that fail to
// parse. A malformed sample is a per-sample defect, never fatal to the series.
func MapApiSeriesToDomain(ctx context.Context, samples []api.Sample) domain.Series {
	logger := zerolog.Ctx(ctx)
	series := make(domain.Series, 0, len(samples))
	skipped := 0
	for _, s := range samples {
		ds, err := MapApiSampleToDomain(s)
		if err != nil {
			skipped++
			logger.Debug().Err(err).Msg("skipping malformed sample")
			continue
		}
		series = append(series, ds)
	}
	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Int("kept", len(series)).Msg("dropped malformed samples")
	}
	return series
}
