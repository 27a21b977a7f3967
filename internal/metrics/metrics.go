// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the analysis pipeline:
// - Run outcomes and durations
// - Records processed and corrected during cleaning
// - Per-sub-analysis outcomes of the advanced subsystem

var (
	// Pipeline Metrics
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewlens_runs_total",
			Help: "Total number of analysis runs by outcome",
		},
		[]string{"status"}, // "succeeded", "failed"
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reviewlens_run_duration_seconds",
			Help:    "End-to-end analysis run duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	RecordsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewlens_records_processed_total",
			Help: "Total number of review records accepted by the cleaner",
		},
	)

	// Cleaning Metrics
	CleaningCorrections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewlens_cleaning_corrections_total",
			Help: "Total number of cleaning corrections by kind",
		},
		[]string{"kind"}, // "imputed_rating", "clamped_rating", "unparseable_date"
	)

	// Advanced Subsystem Metrics
	SubAnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewlens_subanalyses_total",
			Help: "Total number of advanced sub-analysis executions by outcome",
		},
		[]string{"name", "status"}, // status: "succeeded", "skipped", "failed"
	)
)

// ObserveRun records one completed pipeline run.
func ObserveRun(status string, started time.Time, records int) {
	RunsTotal.WithLabelValues(status).Inc()
	RunDuration.Observe(time.Since(started).Seconds())
	if records > 0 {
		RecordsProcessed.Add(float64(records))
	}
}

// ObserveSubAnalysis records one advanced sub-analysis outcome.
func ObserveSubAnalysis(name, status string) {
	SubAnalysesTotal.WithLabelValues(name, status).Inc()
}

// ObserveCleaning records the cleaner's correction counters.
func ObserveCleaning(imputed, clamped, unparseableDates int) {
	CleaningCorrections.WithLabelValues("imputed_rating").Add(float64(imputed))
	CleaningCorrections.WithLabelValues("clamped_rating").Add(float64(clamped))
	CleaningCorrections.WithLabelValues("unparseable_date").Add(float64(unparseableDates))
}
