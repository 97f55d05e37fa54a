package cmdref

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog construction metrics
	catalogBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cmdref_catalog_build_duration_seconds",
			Help:    "Duration of command reference catalog construction in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	catalogBuildTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmdref_catalog_build_total",
			Help: "Total number of catalog construction attempts",
		},
		[]string{"status"}, // success or error
	)

	// Lookup metrics
	catalogLookupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmdref_catalog_lookup_total",
			Help: "Total number of catalog lookups",
		},
		[]string{"outcome"}, // hit or miss
	)
)
