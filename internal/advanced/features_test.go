// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package advanced

import (
	"testing"
	"time"

	"github.com/tomtom215/reviewlens/internal/review"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestBuildFeaturesShape(t *testing.T) {
	in := &Input{
		Records: []review.Record{
			{Title: "Great", Body: "clean room", ShortEvaluation: "good", Rating: 9, WrittenAt: datePtr(2024, time.March, 15)},
			{Title: "Bad", Body: "dirty bathroom", ShortEvaluation: "bad", Rating: 2},
		},
		Texts: []string{
			"Great clean room good",
			"Bad dirty bathroom bad",
		},
		Aspects: []review.Category{
			{Name: "cleanliness", Keywords: []string{"clean", "dirty"}},
		},
		PositiveKeywords: []string{"good", "clean"},
		NegativeKeywords: []string{"bad", "dirty"},
	}

	fs, err := BuildFeatures(in)
	if err != nil {
		t.Fatalf("BuildFeatures: %v", err)
	}

	wantNames := []string{
		"title_length", "body_length", "short_evaluation_length", "total_text_length",
		"year", "month", "quarter", "weekday",
		"cleanliness_keywords",
		"negative_keywords", "positive_keywords",
		"positive_ratio", "negative_ratio",
	}
	if len(fs.Names) != len(wantNames) {
		t.Fatalf("got %d feature names, want %d", len(fs.Names), len(wantNames))
	}
	for i, name := range wantNames {
		if fs.Names[i] != name {
			t.Errorf("Names[%d] = %q, want %q", i, fs.Names[i], name)
		}
	}
	for i, row := range fs.Rows {
		if len(row) != len(wantNames) {
			t.Errorf("row %d has %d values, want %d", i, len(row), len(wantNames))
		}
	}
	if fs.Target[0] != 9 || fs.Target[1] != 2 {
		t.Errorf("Target = %v, want [9 2]", fs.Target)
	}
}

func TestBuildFeaturesValues(t *testing.T) {
	in := &Input{
		Records: []review.Record{
			{Title: "Great", Body: "clean room", Rating: 9, WrittenAt: datePtr(2024, time.March, 15)},
		},
		Texts:            []string{"Great clean room"},
		PositiveKeywords: []string{"clean"},
		NegativeKeywords: []string{"dirty"},
	}

	fs, err := BuildFeatures(in)
	if err != nil {
		t.Fatalf("BuildFeatures: %v", err)
	}
	row := fs.Rows[0]

	if row[0] != 5 { // "Great"
		t.Errorf("title_length = %v, want 5", row[0])
	}
	if row[3] != 5+10 { // empty short evaluation
		t.Errorf("total_text_length = %v, want 15", row[3])
	}
	// 2024-03-15 is a Friday; weekday is Monday-based.
	if row[4] != 2024 || row[5] != 3 || row[6] != 1 || row[7] != 4 {
		t.Errorf("calendar features = %v, want [2024 3 1 4]", row[4:8])
	}
	// pos=1, neg=0: ratios 1/2 and 0/2.
	if row[10] != 0.5 || row[11] != 0 {
		t.Errorf("sentiment ratios = [%v %v], want [0.5 0]", row[10], row[11])
	}
}

func TestBuildFeaturesUnknownDateIsZero(t *testing.T) {
	in := &Input{
		Records: []review.Record{{Title: "x", Rating: 5}},
		Texts:   []string{"x"},
	}
	fs, err := BuildFeatures(in)
	if err != nil {
		t.Fatalf("BuildFeatures: %v", err)
	}
	for _, j := range []int{4, 5, 6, 7} {
		if fs.Rows[0][j] != 0 {
			t.Errorf("calendar feature %d = %v, want 0 for unknown date", j, fs.Rows[0][j])
		}
	}
}

func TestBuildFeaturesEmptyInput(t *testing.T) {
	if _, err := BuildFeatures(&Input{}); err == nil {
		t.Fatal("expected error for empty input")
	}
}
