// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

// Package classify derives per-record sentiment labels and lexicon
// membership from canonical records. Classification is pure and
// deterministic; membership matrices are computed exactly once per run and
// reused by every downstream aggregation.
package classify

import (
	"github.com/tomtom215/reviewlens/internal/review"
)

// Membership is a boolean records-by-categories matrix. Category order
// follows lexicon declaration order, which downstream ranking relies on
// for tie-breaking.
type Membership struct {
	categories []string
	mask       map[string][]bool
}

// NewMembership evaluates every category against every canonical text.
// This is the single point where keyword matching happens per run.
func NewMembership(texts []string, categories []review.Category) *Membership {
	m := &Membership{
		categories: make([]string, 0, len(categories)),
		mask:       make(map[string][]bool, len(categories)),
	}
	for _, cat := range categories {
		matches := make([]bool, len(texts))
		for i, text := range texts {
			matches[i] = cat.Matches(text)
		}
		m.categories = append(m.categories, cat.Name)
		m.mask[cat.Name] = matches
	}
	return m
}

// Categories returns the category names in declaration order.
func (m *Membership) Categories() []string {
	return m.categories
}

// Mask returns the per-record membership flags for a category, or nil when
// the category is unknown. Callers must not mutate the returned slice.
func (m *Membership) Mask(category string) []bool {
	return m.mask[category]
}

// Count returns how many records belong to the category.
func (m *Membership) Count(category string) int {
	n := 0
	for _, matched := range m.mask[category] {
		if matched {
			n++
		}
	}
	return n
}

// Result bundles everything the classifier derives from a record set.
type Result struct {
	// Texts holds the canonical text per record, aligned with the input.
	Texts []string

	// Sentiments holds the per-record sentiment label.
	Sentiments []review.Sentiment

	// Aspects and Segments are the memoized membership matrices.
	Aspects  *Membership
	Segments *Membership
}

// Classify labels every record and computes both membership matrices.
// A record with entirely empty canonical text matches no category but is
// still sentiment-labeled from its rating.
func Classify(records []review.Record, thresholds review.Thresholds, aspects, segments []review.Category) *Result {
	texts := make([]string, len(records))
	sentiments := make([]review.Sentiment, len(records))
	for i := range records {
		texts[i] = records[i].CanonicalText()
		sentiments[i] = thresholds.Label(records[i].Rating)
	}

	return &Result{
		Texts:      texts,
		Sentiments: sentiments,
		Aspects:    NewMembership(texts, aspects),
		Segments:   NewMembership(texts, segments),
	}
}
