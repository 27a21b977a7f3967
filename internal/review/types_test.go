// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package review

import (
	"errors"
	"testing"
	"time"
)

func TestThresholdsLabel(t *testing.T) {
	th := Thresholds{Low: 6, High: 8}

	tests := []struct {
		rating float64
		want   Sentiment
	}{
		{10, SentimentPositive},
		{8, SentimentPositive},
		{7.9, SentimentNeutral},
		{7, SentimentNeutral},
		{6.1, SentimentNeutral},
		{6, SentimentNegative},
		{1, SentimentNegative},
	}

	for _, tt := range tests {
		if got := th.Label(tt.rating); got != tt.want {
			t.Errorf("Label(%v) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestThresholdsPartition(t *testing.T) {
	// Every rating on a fine grid must land in exactly one class.
	th := Thresholds{Low: 6, High: 8}
	for r := RatingMin; r <= RatingMax; r += 0.1 {
		label := th.Label(r)
		if label != SentimentPositive && label != SentimentNegative && label != SentimentNeutral {
			t.Fatalf("Label(%v) = %q, not a valid class", r, label)
		}
	}
}

func TestThresholdsValid(t *testing.T) {
	if !(Thresholds{Low: 6, High: 8}).Valid() {
		t.Error("expected (6,8) to be valid")
	}
	if (Thresholds{Low: 8, High: 6}).Valid() {
		t.Error("expected (8,6) to be invalid")
	}
	if (Thresholds{Low: 7, High: 7}).Valid() {
		t.Error("expected (7,7) to be invalid")
	}
}

func TestCategoryMatches(t *testing.T) {
	c := Category{Name: "clean", Keywords: []string{"clean", "dirty"}}

	tests := []struct {
		text string
		want bool
	}{
		{"very clean room", true},
		{"nothing relevant", false},
		{"a dirty floor", true},
		{"Clean room", false}, // case-sensitive substring semantics
		{"", false},
	}

	for _, tt := range tests {
		if got := c.Matches(tt.text); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestRecordCanonicalText(t *testing.T) {
	r := Record{Title: "great stay", Body: "room was clean", ShortEvaluation: "recommend"}
	want := "great stay room was clean recommend"
	if got := r.CanonicalText(); got != want {
		t.Errorf("CanonicalText() = %q, want %q", got, want)
	}

	empty := Record{}
	if got := empty.CanonicalText(); got != "  " {
		t.Errorf("CanonicalText() on empty record = %q, want two spaces", got)
	}
}

func TestRecordCalendarAccessors(t *testing.T) {
	d := time.Date(2023, time.August, 16, 0, 0, 0, 0, time.UTC) // a Wednesday
	r := Record{WrittenAt: &d}

	if y, ok := r.Year(); !ok || y != 2023 {
		t.Errorf("Year() = %d, %v; want 2023, true", y, ok)
	}
	if m, ok := r.Month(); !ok || m != 8 {
		t.Errorf("Month() = %d, %v; want 8, true", m, ok)
	}
	if q, ok := r.Quarter(); !ok || q != 3 {
		t.Errorf("Quarter() = %d, %v; want 3, true", q, ok)
	}
	if w, ok := r.Weekday(); !ok || w != 2 {
		t.Errorf("Weekday() = %d, %v; want 2 (Wednesday), true", w, ok)
	}

	unknown := Record{}
	if _, ok := unknown.Year(); ok {
		t.Error("Year() on nil date should report false")
	}
}

func TestTableColumnIndex(t *testing.T) {
	tbl := Table{Columns: []string{"title", "rating"}}
	if i := tbl.ColumnIndex("rating"); i != 1 {
		t.Errorf("ColumnIndex(rating) = %d, want 1", i)
	}
	if i := tbl.ColumnIndex("missing"); i != -1 {
		t.Errorf("ColumnIndex(missing) = %d, want -1", i)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	var schemaErr *SchemaError
	err := error(&SchemaError{Missing: []string{"rating", "title"}})
	if !errors.As(err, &schemaErr) {
		t.Fatal("errors.As should match SchemaError")
	}
	if schemaErr.Error() != "input schema invalid, missing required columns: rating, title" {
		t.Errorf("unexpected message: %s", schemaErr.Error())
	}

	empty := &EmptyDatasetError{Op: "kpis"}
	if empty.Error() != "kpis: cannot aggregate an empty dataset" {
		t.Errorf("unexpected message: %s", empty.Error())
	}
}
