package server

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	recordsCreated *prometheus.CounterVec
	matchRuns      prometheus.Counter
	matchesFound   prometheus.Histogram
	resets         prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "donormatch",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "donormatch",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		recordsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "donormatch",
			Name:      "records_created_total",
			Help:      "Victim and donor records accepted.",
		}, []string{"kind"}),
		matchRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "donormatch",
			Name:      "match_runs_total",
			Help:      "Match computations served.",
		}),
		matchesFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "donormatch",
			Name:      "matches_per_run",
			Help:      "Number of pairs produced by a match computation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "donormatch",
			Name:      "resets_total",
			Help:      "Successful store resets.",
		}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.latency, m.recordsCreated, m.matchRuns, m.matchesFound, m.resets} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}

	return m, nil
}
