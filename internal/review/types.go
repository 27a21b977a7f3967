// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

// Package review defines the canonical data model shared by every stage of
// the analytics pipeline: the raw tabular input, the cleaned record, the
// sentiment label and the keyword lexicons used for aspect and segment
// classification.
package review

import (
	"strings"
	"time"
)

// Rating bounds for the input scale. Values outside this range are treated
// as unparseable during cleaning.
const (
	RatingMin = 1.0
	RatingMax = 10.0
)

// Table is a raw tabular record set as handed to the engine. Columns holds
// the header names in input order; every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Record is a cleaned, schema-validated review row. Rating is always a
// valid value within [RatingMin, RatingMax] after cleaning; WrittenAt is
// nil when the source date could not be parsed (tracked, never dropped).
type Record struct {
	Title           string     `json:"title"`
	Body            string     `json:"body"`
	ShortEvaluation string     `json:"short_evaluation"`
	ReviewerGroup   string     `json:"reviewer_group,omitempty"`
	Rating          float64    `json:"rating"`
	WrittenAt       *time.Time `json:"written_at,omitempty"`
}

// CanonicalText returns the concatenation of all free-text fields. It is
// the only text representation used for keyword matching and is recomputed
// per run; callers must not cache it across runs.
func (r *Record) CanonicalText() string {
	return r.Title + " " + r.Body + " " + r.ShortEvaluation
}

// Year returns the calendar year of the review, or false when the date is
// unknown.
func (r *Record) Year() (int, bool) {
	if r.WrittenAt == nil {
		return 0, false
	}
	return r.WrittenAt.Year(), true
}

// Month returns the calendar month (1-12), or false when the date is unknown.
func (r *Record) Month() (int, bool) {
	if r.WrittenAt == nil {
		return 0, false
	}
	return int(r.WrittenAt.Month()), true
}

// Quarter returns the calendar quarter (1-4), or false when the date is
// unknown.
func (r *Record) Quarter() (int, bool) {
	if r.WrittenAt == nil {
		return 0, false
	}
	return (int(r.WrittenAt.Month())-1)/3 + 1, true
}

// Weekday returns the day of week (0=Monday .. 6=Sunday), or false when the
// date is unknown.
func (r *Record) Weekday() (int, bool) {
	if r.WrittenAt == nil {
		return 0, false
	}
	// time.Weekday starts at Sunday; shift so Monday is 0.
	return (int(r.WrittenAt.Weekday()) + 6) % 7, true
}

// Sentiment is the per-record sentiment label derived from the rating.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Thresholds partitions the rating domain into the three sentiment classes.
// Low must be strictly less than High.
type Thresholds struct {
	// Low is the rating at or below which a review is negative.
	Low float64 `koanf:"low" json:"low"`

	// High is the rating at or above which a review is positive.
	High float64 `koanf:"high" json:"high"`
}

// Valid reports whether the thresholds define a well-ordered partition.
func (t Thresholds) Valid() bool {
	return t.Low < t.High
}

// Label returns the sentiment class for a rating. Every rating maps to
// exactly one class: >= High is positive, <= Low is negative, the open
// interval between them is neutral.
func (t Thresholds) Label(rating float64) Sentiment {
	switch {
	case rating >= t.High:
		return SentimentPositive
	case rating <= t.Low:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Category is a named lexicon entry: a record belongs to the category iff
// its canonical text contains at least one keyword. Matching is
// case-sensitive raw substring containment, not tokenized matching;
// membership across categories is non-exclusive.
type Category struct {
	Name     string   `koanf:"name" json:"name" validate:"required"`
	Keywords []string `koanf:"keywords" json:"keywords" validate:"min=1"`
}

// Matches reports whether the text contains any of the category keywords.
func (c Category) Matches(text string) bool {
	for _, kw := range c.Keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
