// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package advanced

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/reviewlens/internal/review"
)

// analyzerInput builds a dataset large enough for every sub-analysis:
// mixed vocabulary, several years, varying ratings.
func analyzerInput(n int) *Input {
	themes := []string{
		"room was clean and spotless housekeeping excellent",
		"breakfast buffet delicious coffee tasty food",
		"staff friendly helpful reception welcoming service",
	}
	in := &Input{
		Aspects: []review.Category{
			{Name: "cleanliness", Keywords: []string{"clean", "spotless"}},
			{Name: "food", Keywords: []string{"breakfast", "coffee"}},
		},
		PositiveKeywords: []string{"excellent", "delicious", "friendly"},
		NegativeKeywords: []string{"dirty", "rude", "cold"},
	}
	for i := 0; i < n; i++ {
		text := themes[i%len(themes)]
		rating := float64(4 + i%6)
		in.Texts = append(in.Texts, text)
		in.Records = append(in.Records, review.Record{
			Title:     fmt.Sprintf("stay %d", i),
			Body:      text,
			Rating:    rating,
			WrittenAt: datePtr(2018+i%7, time.Month(1+i%12), 1+i%28),
		})
	}
	return in
}

func TestRunAllSubAnalysesSucceed(t *testing.T) {
	a := New(Config{
		EnableRatingPrediction:     true,
		EnableTopicModeling:        true,
		EnableChangePointDetection: true,
		TopicCount:                 3,
		ForestTrees:                20,
	})

	art, err := a.Run(context.Background(), analyzerInput(60))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if art.State != StateSucceeded {
		t.Fatalf("state = %q, want %q (results: %+v)", art.State, StateSucceeded, art.SubAnalyses)
	}
	if art.RatingPrediction == nil || art.Topics == nil || art.ChangePoints == nil {
		t.Error("expected every artifact to be populated")
	}
	if len(art.SubAnalyses) != 3 {
		t.Errorf("got %d sub-analysis results, want 3", len(art.SubAnalyses))
	}
}

func TestRunEmptyInputFails(t *testing.T) {
	a := New(Config{EnableRatingPrediction: true})
	art, err := a.Run(context.Background(), &Input{})
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	var insufficient *review.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Errorf("error = %v, want InsufficientDataError", err)
	}
	if art.State != StateFailed {
		t.Errorf("state = %q, want %q", art.State, StateFailed)
	}
}

func TestRunMisalignedTextsFails(t *testing.T) {
	a := New(Config{})
	art, err := a.Run(context.Background(), &Input{
		Records: make([]review.Record, 2),
		Texts:   []string{"only one"},
	})
	if err == nil {
		t.Fatal("expected error for misaligned texts")
	}
	if art.State != StateFailed {
		t.Errorf("state = %q, want %q", art.State, StateFailed)
	}
}

func TestRunUnavailableCapabilityIsSkipped(t *testing.T) {
	a := New(Config{
		EnableTopicModeling:        true,
		EnableChangePointDetection: true,
		TopicCount:                 2,
	}, WithCapability(CapabilityTopicModeling, false))

	art, err := a.Run(context.Background(), analyzerInput(20))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if art.State != StateSucceeded {
		t.Errorf("state = %q, want %q: skips are not failures", art.State, StateSucceeded)
	}

	var topicStatus Status
	for _, r := range art.SubAnalyses {
		if r.Name == CapabilityTopicModeling {
			topicStatus = r.Status
		}
	}
	if topicStatus != StatusSkipped {
		t.Errorf("topic modeling status = %q, want %q", topicStatus, StatusSkipped)
	}
	if art.Topics != nil {
		t.Error("skipped sub-analysis must not produce an artifact")
	}
}

func TestRunFailingSubAnalysisIsIsolated(t *testing.T) {
	// Too few documents for the requested topic count fails topic
	// modeling but leaves change-point detection intact.
	a := New(Config{
		EnableTopicModeling:        true,
		EnableChangePointDetection: true,
		TopicCount:                 50,
	})

	art, err := a.Run(context.Background(), analyzerInput(10))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if art.State != StatePartiallyFailed {
		t.Fatalf("state = %q, want %q", art.State, StatePartiallyFailed)
	}

	statuses := map[Capability]Status{}
	for _, r := range art.SubAnalyses {
		statuses[r.Name] = r.Status
	}
	if statuses[CapabilityTopicModeling] != StatusFailed {
		t.Errorf("topic modeling status = %q, want %q", statuses[CapabilityTopicModeling], StatusFailed)
	}
	if statuses[CapabilityChangePointDetection] != StatusSucceeded {
		t.Errorf("change point status = %q, want %q", statuses[CapabilityChangePointDetection], StatusSucceeded)
	}
	if art.ChangePoints == nil {
		t.Error("surviving sub-analysis lost its artifact")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := Config{
		EnableRatingPrediction:     true,
		EnableTopicModeling:        true,
		EnableChangePointDetection: true,
		TopicCount:                 3,
		ForestTrees:                10,
	}

	first, err := New(cfg).Run(context.Background(), analyzerInput(50))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := New(cfg).Run(context.Background(), analyzerInput(50))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identically configured runs produced different artifacts")
	}
}

func TestNewFillsDefaults(t *testing.T) {
	a := New(Config{})
	def := DefaultConfig()
	if a.cfg.Seed != def.Seed || a.cfg.Folds != def.Folds || a.cfg.TopicCount != def.TopicCount {
		t.Errorf("zero config not defaulted: %+v", a.cfg)
	}
}

func TestRunRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := New(Config{EnableRatingPrediction: true, ForestTrees: 10})
	art, err := a.Run(ctx, analyzerInput(50))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The cancelled sub-analysis fails, the run itself is isolated.
	if art.State != StatePartiallyFailed {
		t.Errorf("state = %q, want %q", art.State, StatePartiallyFailed)
	}
}
