// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package advanced

import (
	"math"
	"testing"
)

// stepData is a simple regression problem with a single informative
// feature: y jumps from 1 to 9 when x0 crosses 5. The second feature is
// constant noise.
func stepData() ([][]float64, []float64) {
	var x [][]float64
	var y []float64
	for i := 0; i < 40; i++ {
		v := float64(i) / 4
		target := 1.0
		if v > 5 {
			target = 9.0
		}
		x = append(x, []float64{v, 3})
		y = append(y, target)
	}
	return x, y
}

func TestForestLearnsStepFunction(t *testing.T) {
	x, y := stepData()
	f, err := FitForest(x, y, ForestConfig{Trees: 50, MaxDepth: 4, Seed: 42})
	if err != nil {
		t.Fatalf("FitForest: %v", err)
	}

	low := f.Predict([]float64{1, 3})
	high := f.Predict([]float64{9, 3})
	if math.Abs(low-1) > 1 {
		t.Errorf("Predict(low) = %v, want near 1", low)
	}
	if math.Abs(high-9) > 1 {
		t.Errorf("Predict(high) = %v, want near 9", high)
	}
}

func TestForestImportancesFavorInformativeFeature(t *testing.T) {
	x, y := stepData()
	f, err := FitForest(x, y, ForestConfig{Trees: 50, MaxDepth: 4, Seed: 42})
	if err != nil {
		t.Fatalf("FitForest: %v", err)
	}

	imp := f.Importances()
	if imp[0] <= imp[1] {
		t.Errorf("importances = %v, want feature 0 dominant", imp)
	}
	sum := imp[0] + imp[1]
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("importances sum to %v, want 1", sum)
	}
}

func TestForestIsDeterministicForSeed(t *testing.T) {
	x, y := stepData()
	a, err := FitForest(x, y, ForestConfig{Trees: 20, MaxDepth: 4, Seed: 7})
	if err != nil {
		t.Fatalf("FitForest: %v", err)
	}
	b, err := FitForest(x, y, ForestConfig{Trees: 20, MaxDepth: 4, Seed: 7})
	if err != nil {
		t.Fatalf("FitForest: %v", err)
	}

	for i, row := range x {
		if a.Predict(row) != b.Predict(row) {
			t.Fatalf("prediction %d differs between identically seeded forests", i)
		}
	}
}

func TestForestEmptyInput(t *testing.T) {
	if _, err := FitForest(nil, nil, DefaultForestConfig()); err == nil {
		t.Fatal("expected error for empty input")
	}
}
