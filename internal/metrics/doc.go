// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

/*
Package metrics provides Prometheus metrics for the analysis pipeline.

# Available Metrics

Pipeline:
  - reviewlens_runs_total: analysis runs (counter)
    Labels: status (succeeded, failed)
  - reviewlens_run_duration_seconds: end-to-end run duration (histogram)
  - reviewlens_records_processed_total: records accepted by the cleaner (counter)

Cleaning:
  - reviewlens_cleaning_corrections_total: cleaning corrections (counter)
    Labels: kind (imputed_rating, clamped_rating, unparseable_date)

Advanced subsystem:
  - reviewlens_subanalyses_total: sub-analysis executions (counter)
    Labels: name, status (succeeded, skipped, failed)

# Usage

	import "github.com/tomtom215/reviewlens/internal/metrics"

	started := time.Now()
	bundle, err := eng.Run(ctx, table, cfg)
	status := "succeeded"
	if err != nil {
		status = "failed"
	}
	metrics.ObserveRun(status, started, len(bundle.Records))

All recording functions are safe for concurrent use; the Prometheus client
handles synchronization internally.
*/
package metrics
