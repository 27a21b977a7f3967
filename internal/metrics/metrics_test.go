// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRunIncrementsCounters(t *testing.T) {
	beforeRuns := testutil.ToFloat64(RunsTotal.WithLabelValues("succeeded"))
	beforeRecords := testutil.ToFloat64(RecordsProcessed)

	ObserveRun("succeeded", time.Now(), 25)

	if got := testutil.ToFloat64(RunsTotal.WithLabelValues("succeeded")); got != beforeRuns+1 {
		t.Errorf("runs_total = %v, want %v", got, beforeRuns+1)
	}
	if got := testutil.ToFloat64(RecordsProcessed); got != beforeRecords+25 {
		t.Errorf("records_processed_total = %v, want %v", got, beforeRecords+25)
	}
}

func TestObserveRunZeroRecords(t *testing.T) {
	before := testutil.ToFloat64(RecordsProcessed)
	ObserveRun("failed", time.Now(), 0)
	if got := testutil.ToFloat64(RecordsProcessed); got != before {
		t.Errorf("records_processed_total moved on a zero-record run: %v -> %v", before, got)
	}
}

func TestObserveSubAnalysis(t *testing.T) {
	before := testutil.ToFloat64(SubAnalysesTotal.WithLabelValues("topic_modeling", "skipped"))
	ObserveSubAnalysis("topic_modeling", "skipped")
	if got := testutil.ToFloat64(SubAnalysesTotal.WithLabelValues("topic_modeling", "skipped")); got != before+1 {
		t.Errorf("subanalyses_total = %v, want %v", got, before+1)
	}
}

func TestObserveCleaning(t *testing.T) {
	before := testutil.ToFloat64(CleaningCorrections.WithLabelValues("imputed_rating"))
	ObserveCleaning(3, 1, 2)
	if got := testutil.ToFloat64(CleaningCorrections.WithLabelValues("imputed_rating")); got != before+3 {
		t.Errorf("imputed_rating corrections = %v, want %v", got, before+3)
	}
	if got := testutil.ToFloat64(CleaningCorrections.WithLabelValues("clamped_rating")); got < 1 {
		t.Errorf("clamped_rating corrections = %v, want >= 1", got)
	}
}
