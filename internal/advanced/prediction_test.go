// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package advanced

import (
	"context"
	"math"
	"testing"
)

// linearFeatureSet builds y = 1 + 2*x0 with a noise feature x1.
func linearFeatureSet(n int) *FeatureSet {
	fs := &FeatureSet{Names: []string{"signal", "noise"}}
	for i := 0; i < n; i++ {
		x0 := float64(i % 10)
		x1 := float64((i * 7) % 3)
		fs.Rows = append(fs.Rows, []float64{x0, x1})
		fs.Target = append(fs.Target, 1+2*x0)
	}
	return fs
}

func TestRunRatingPredictionReports(t *testing.T) {
	a := New(Config{ForestTrees: 20, TopFeatures: 2})
	report, err := a.runRatingPrediction(context.Background(), linearFeatureSet(60))
	if err != nil {
		t.Fatalf("runRatingPrediction: %v", err)
	}

	if len(report.Models) != 3 {
		t.Fatalf("got %d models, want 3", len(report.Models))
	}
	names := map[string]bool{}
	for _, m := range report.Models {
		names[m.Name] = true
		if len(m.Importances) != 2 {
			t.Errorf("%s has %d importances, want 2", m.Name, len(m.Importances))
		}
	}
	for _, want := range []string{ModelLinear, ModelRidge, ModelForest} {
		if !names[want] {
			t.Errorf("missing model %q", want)
		}
	}

	if report.TrainSize+report.TestSize != 60 {
		t.Errorf("train %d + test %d != 60", report.TrainSize, report.TestSize)
	}

	// A noiseless linear target is recovered almost exactly by OLS.
	for _, m := range report.Models {
		if m.Name == ModelLinear {
			if m.MSE > 1e-9 {
				t.Errorf("linear MSE = %v, want ~0", m.MSE)
			}
			if m.R2 < 0.999 {
				t.Errorf("linear R2 = %v, want ~1", m.R2)
			}
			if m.Importances[0].Feature != "signal" {
				t.Errorf("top linear importance = %q, want signal", m.Importances[0].Feature)
			}
		}
	}
}

func TestRunRatingPredictionAttributionRanksSignal(t *testing.T) {
	a := New(Config{ForestTrees: 30, TopFeatures: 2})
	report, err := a.runRatingPrediction(context.Background(), linearFeatureSet(80))
	if err != nil {
		t.Fatalf("runRatingPrediction: %v", err)
	}

	if len(report.TopAttributions) == 0 {
		t.Fatal("expected non-empty attributions")
	}
	if report.TopAttributions[0].Feature != "signal" {
		t.Errorf("top attribution = %q, want signal", report.TopAttributions[0].Feature)
	}
}

func TestRunRatingPredictionTooFewRecords(t *testing.T) {
	a := New(Config{Folds: 5})
	if _, err := a.runRatingPrediction(context.Background(), linearFeatureSet(6)); err == nil {
		t.Fatal("expected error for too few records")
	}
}

func TestCrossValidateStatsAreFinite(t *testing.T) {
	fs := linearFeatureSet(50)
	fit := func(x [][]float64, y []float64) (regressor, error) {
		return FitLinear(x, y)
	}
	mean, std, err := crossValidate(context.Background(), fs, fit, 5, 42)
	if err != nil {
		t.Fatalf("crossValidate: %v", err)
	}
	if math.IsNaN(mean) || math.IsNaN(std) {
		t.Errorf("cv stats = (%v, %v), want finite", mean, std)
	}
	if mean < 0.99 {
		t.Errorf("cv mean R2 = %v, want ~1 for a noiseless linear target", mean)
	}
}

func TestAttributeFeaturesTruncates(t *testing.T) {
	fs := linearFeatureSet(40)
	model, err := FitLinear(fs.Rows, fs.Target)
	if err != nil {
		t.Fatalf("FitLinear: %v", err)
	}
	out := attributeFeatures(model, fs.Names, fs.Rows, fs.Rows, 1)
	if len(out) != 1 {
		t.Fatalf("got %d attributions, want 1", len(out))
	}
	if out[0].Feature != "signal" {
		t.Errorf("kept attribution = %q, want signal", out[0].Feature)
	}
}
