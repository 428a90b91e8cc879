// Package metrics registers the prometheus instruments for backend fetches
// and chart builds. Init is safe to call from every entrypoint.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "enerfolio_"

	ResultSuccess = "success"
	ResultError   = "error"
	ResultStale   = "stale"
)

var (
	registerOnce sync.Once

	fetchTotal   *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec

	chartBuildTotal   *prometheus.CounterVec
	chartBuildLatency *prometheus.HistogramVec
)

func Init() {
	registerOnce.Do(func() {
		fetchTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "backend_fetch_total",
				Help: "Total backend series fetches by kind and result",
			},
			[]string{"kind", "result"},
		)
		fetchLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "backend_fetch_latency_seconds",
				Help:    "Backend series fetch latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "result"},
		)
		chartBuildTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "chart_build_total",
				Help: "Total chart builds by granularity and result",
			},
			[]string{"granularity", "result"},
		)
		chartBuildLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "chart_build_latency_seconds",
				Help:    "Chart build latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"granularity", "result"},
		)

		prometheus.MustRegister(
			fetchTotal,
			fetchLatency,
			chartBuildTotal,
			chartBuildLatency,
		)
	})
}

// ObserveFetch records one backend fetch.
func ObserveFetch(kind, result string, duration time.Duration) {
	if fetchTotal == nil {
		return
	}
	fetchTotal.WithLabelValues(kind, result).Inc()
	fetchLatency.WithLabelValues(kind, result).Observe(duration.Seconds())
}

// ObserveChartBuild records one chart build.
func ObserveChartBuild(granularity, result string, duration time.Duration) {
	if chartBuildTotal == nil {
		return
	}
	chartBuildTotal.WithLabelValues(granularity, result).Inc()
	chartBuildLatency.WithLabelValues(granularity, result).Observe(duration.Seconds())
}
