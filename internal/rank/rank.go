// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

// Package rank turns per-aspect statistics into a ranked improvement list.
// The priority score is a weighted combination of the negative-sentiment
// ratio within the aspect and the aspect's mention frequency across the
// whole dataset.
package rank

import (
	"math"
	"sort"

	"github.com/tomtom215/reviewlens/internal/aggregate"
)

// Weights configures the priority score. Both weights must be
// non-negative and sum to 1.
type Weights struct {
	// Negative weighs the negative-sentiment ratio within the aspect.
	Negative float64 `koanf:"negative" json:"negative"`

	// Frequency weighs the aspect's mention frequency.
	Frequency float64 `koanf:"frequency" json:"frequency"`
}

// Valid reports whether the weights form a convex combination.
func (w Weights) Valid() bool {
	return w.Negative >= 0 && w.Frequency >= 0 &&
		math.Abs(w.Negative+w.Frequency-1) < 1e-9
}

// Priority is one ranked aspect. Ratio and frequency are percentages;
// Score is the weighted combination scaled by 100.
type Priority struct {
	Aspect           string  `json:"aspect"`
	NegativeRatio    float64 `json:"negative_ratio"`
	MentionFrequency float64 `json:"mention_frequency"`
	Score            float64 `json:"priority_score"`
	Matched          int     `json:"matched"`
}

// Scores ranks aspects by priority, descending. Aspects with zero matches
// are excluded from the ranking (they remain visible in the raw category
// statistics). The sort is stable: equal scores keep lexicon declaration
// order. totalRecords must be the full dataset size.
func Scores(stats []aggregate.CategoryStats, w Weights, totalRecords int) []Priority {
	if totalRecords <= 0 {
		return nil
	}

	out := make([]Priority, 0, len(stats))
	for _, s := range stats {
		if s.Matched == 0 {
			continue
		}
		frequency := float64(s.Matched) / float64(totalRecords)
		score := w.Negative*(s.NegativePct/100) + w.Frequency*frequency

		out = append(out, Priority{
			Aspect:           s.Name,
			NegativeRatio:    s.NegativePct,
			MentionFrequency: round1(frequency * 100),
			Score:            round2(score * 100),
			Matched:          s.Matched,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Top returns the first n priorities, or all of them when fewer exist.
func Top(priorities []Priority, n int) []Priority {
	if n < 0 {
		n = 0
	}
	if len(priorities) <= n {
		return priorities
	}
	return priorities[:n]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
