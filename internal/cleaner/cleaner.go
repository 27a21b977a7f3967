// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

// Package cleaner validates the raw input schema and normalizes rows into
// canonical records: rating coercion and range checks, date parsing,
// median imputation, IQR-based outlier clamping and text normalization.
//
// Cleaning never drops rows. The record count is invariant across the
// whole pass; out-of-band values are imputed or clamped and every
// correction is counted in the Report.
package cleaner

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/reviewlens/internal/logging"
	"github.com/tomtom215/reviewlens/internal/review"
)

// RequiredColumns lists the input columns that must be present, in the
// order they are reported when missing. The reviewer column is required by
// the schema but never carried into the canonical record.
var RequiredColumns = []string{
	"title",
	"body",
	"rating",
	"written_at",
	"short_evaluation",
	"reviewer",
	"reviewer_group",
}

// dateLayouts are tried in order when parsing written_at.
var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Report records what cleaning changed, for observability. The input is
// never mutated; all corrections apply to the produced record set only.
type Report struct {
	TotalRows          int     `json:"total_rows"`
	UnparseableRatings int     `json:"unparseable_ratings"`
	OutOfRangeRatings  int     `json:"out_of_range_ratings"`
	ImputedRatings     int     `json:"imputed_ratings"`
	ClampedRatings     int     `json:"clamped_ratings"`
	UnparseableDates   int     `json:"unparseable_dates"`
	MedianRating       float64 `json:"median_rating"`
	LowerBound         float64 `json:"iqr_lower_bound"`
	UpperBound         float64 `json:"iqr_upper_bound"`
}

// Clean validates the table schema and produces the canonical record set.
// It returns a SchemaError when required columns are missing and an
// InsufficientDataError when no row carries a usable rating.
func Clean(table *review.Table) ([]review.Record, *Report, error) {
	if err := validateSchema(table); err != nil {
		return nil, nil, err
	}

	report := &Report{TotalRows: len(table.Rows)}

	var (
		title     = table.ColumnIndex("title")
		body      = table.ColumnIndex("body")
		rating    = table.ColumnIndex("rating")
		writtenAt = table.ColumnIndex("written_at")
		shortEval = table.ColumnIndex("short_evaluation")
		group     = table.ColumnIndex("reviewer_group")
	)

	records := make([]review.Record, len(table.Rows))
	ratings := make([]float64, len(table.Rows))
	valid := make([]bool, len(table.Rows))

	for i, row := range table.Rows {
		r, ok := parseRating(row[rating])
		switch {
		case !ok:
			report.UnparseableRatings++
		case r < review.RatingMin || r > review.RatingMax:
			// Out-of-range ratings become null here, not clipped;
			// imputation fills them below.
			report.OutOfRangeRatings++
			ok = false
		}
		ratings[i], valid[i] = r, ok

		if ts, ok := parseDate(row[writtenAt]); ok {
			records[i].WrittenAt = &ts
		} else {
			report.UnparseableDates++
		}

		records[i].Title = normalizeText(row[title])
		records[i].Body = normalizeText(row[body])
		records[i].ShortEvaluation = normalizeText(row[shortEval])
		records[i].ReviewerGroup = normalizeText(row[group])
	}

	median, ok := medianOf(ratings, valid)
	if !ok {
		return nil, nil, &review.InsufficientDataError{
			Reason: "no parseable rating in any row",
		}
	}
	report.MedianRating = median

	for i := range ratings {
		if !valid[i] {
			ratings[i] = median
			report.ImputedRatings++
		}
	}

	lower, upper := iqrBounds(ratings)
	report.LowerBound, report.UpperBound = lower, upper
	for i, r := range ratings {
		switch {
		case r < lower:
			ratings[i] = lower
			report.ClampedRatings++
		case r > upper:
			ratings[i] = upper
			report.ClampedRatings++
		}
		records[i].Rating = ratings[i]
	}

	if report.ImputedRatings > 0 || report.ClampedRatings > 0 || report.UnparseableDates > 0 {
		logging.Info().
			Int("imputed", report.ImputedRatings).
			Int("clamped", report.ClampedRatings).
			Int("unparseable_dates", report.UnparseableDates).
			Msg("cleaning corrected input values")
	}

	return records, report, nil
}

// validateSchema checks all required columns and reports every missing one
// at once.
func validateSchema(table *review.Table) error {
	var missing []string
	for _, col := range RequiredColumns {
		if table.ColumnIndex(col) == -1 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &review.SchemaError{Missing: missing}
	}
	return nil
}

func parseRating(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// normalizeText trims and collapses all interior whitespace runs to a
// single space; null or blank input becomes the empty string so downstream
// concatenation is total.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// medianOf returns the median over the valid ratings only.
func medianOf(ratings []float64, valid []bool) (float64, bool) {
	usable := make([]float64, 0, len(ratings))
	for i, r := range ratings {
		if valid[i] {
			usable = append(usable, r)
		}
	}
	if len(usable) == 0 {
		return 0, false
	}
	sort.Float64s(usable)
	n := len(usable)
	if n%2 == 1 {
		return usable[n/2], true
	}
	return (usable[n/2-1] + usable[n/2]) / 2, true
}

// iqrBounds returns the Tukey fences (Q1 - 1.5*IQR, Q3 + 1.5*IQR) using
// linearly interpolated quantiles over the full rating set.
func iqrBounds(ratings []float64) (float64, float64) {
	sorted := append([]float64(nil), ratings...)
	sort.Float64s(sorted)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

// quantile computes the q-th quantile of sorted values with linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
