// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package advanced

import (
	"math"
	"sort"

	"github.com/tomtom215/reviewlens/internal/review"
)

// ChangePoint marks a shift in the yearly mean-rating signal. Year is the
// first year of the new regime.
type ChangePoint struct {
	Year         int     `json:"year"`
	RatingBefore float64 `json:"rating_before"`
	RatingAfter  float64 `json:"rating_after"`
	Delta        float64 `json:"delta"`
	Direction    string  `json:"direction"`
}

// ChangePointReport is the change-point-detection artifact.
type ChangePointReport struct {
	Years   []int         `json:"years"`
	Signal  []float64     `json:"signal"`
	Points  []ChangePoint `json:"points"`
	Penalty float64       `json:"penalty"`
}

// DetectChangePoints segments the yearly mean-rating signal with PELT and
// a sum-of-squared-error segment cost. Records without a known date are
// excluded; fewer than two distinct years yield an empty report.
// Reference: Killick, Fearnhead & Eckley (2012), "Optimal Detection of
// Changepoints With a Linear Computational Cost".
func DetectChangePoints(records []review.Record, penalty float64) (*ChangePointReport, error) {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for i := range records {
		year, ok := records[i].Year()
		if !ok {
			continue
		}
		sums[year] += records[i].Rating
		counts[year]++
	}

	years := make([]int, 0, len(sums))
	for year := range sums {
		years = append(years, year)
	}
	sort.Ints(years)

	signal := make([]float64, len(years))
	for i, year := range years {
		signal[i] = sums[year] / float64(counts[year])
	}

	report := &ChangePointReport{Years: years, Signal: signal, Penalty: penalty}
	if len(signal) < 2 {
		return report, nil
	}

	for _, cp := range pelt(signal, penalty) {
		before, after := signal[cp-1], signal[cp]
		direction := "increase"
		if after < before {
			direction = "decrease"
		}
		report.Points = append(report.Points, ChangePoint{
			Year:         years[cp],
			RatingBefore: before,
			RatingAfter:  after,
			Delta:        after - before,
			Direction:    direction,
		})
	}
	return report, nil
}

// pelt returns the optimal change-point indices (each the start of a new
// segment) for a penalized SSE segmentation. Pruning keeps the candidate
// set small, which gives the linear expected cost.
func pelt(signal []float64, penalty float64) []int {
	n := len(signal)

	// Prefix sums make the SSE of any segment O(1).
	prefix := make([]float64, n+1)
	prefixSq := make([]float64, n+1)
	for i, v := range signal {
		prefix[i+1] = prefix[i] + v
		prefixSq[i+1] = prefixSq[i] + v*v
	}
	cost := func(lo, hi int) float64 { // segment [lo, hi)
		sum := prefix[hi] - prefix[lo]
		sq := prefixSq[hi] - prefixSq[lo]
		return sq - sum*sum/float64(hi-lo)
	}

	best := make([]float64, n+1)
	best[0] = -penalty
	last := make([]int, n+1)
	candidates := []int{0}

	for t := 1; t <= n; t++ {
		best[t] = math.Inf(1)
		for _, s := range candidates {
			c := best[s] + cost(s, t) + penalty
			if c < best[t] {
				best[t] = c
				last[t] = s
			}
		}

		pruned := candidates[:0]
		for _, s := range candidates {
			if best[s]+cost(s, t) <= best[t] {
				pruned = append(pruned, s)
			}
		}
		candidates = append(pruned, t)
	}

	var points []int
	for t := n; t > 0; t = last[t] {
		if last[t] > 0 {
			points = append(points, last[t])
		}
	}
	sort.Ints(points)
	return points
}
