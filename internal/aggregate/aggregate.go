// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

// Package aggregate computes dataset KPIs, time-bucketed trends and
// per-category statistics from canonical records and the memoized
// classification result.
//
// Every function in this package refuses an empty record set with an
// EmptyDatasetError instead of silently producing NaN ratios.
package aggregate

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/reviewlens/internal/classify"
	"github.com/tomtom215/reviewlens/internal/review"
)

// KPIs are the dataset-wide headline numbers. Sentiment ratios are
// fractions of the total (0..1).
type KPIs struct {
	TotalReviews  int        `json:"total_reviews"`
	MeanRating    float64    `json:"mean_rating"`
	MinRating     float64    `json:"min_rating"`
	MaxRating     float64    `json:"max_rating"`
	FirstReviewAt *time.Time `json:"first_review_at,omitempty"`
	LastReviewAt  *time.Time `json:"last_review_at,omitempty"`

	PositiveCount int `json:"positive_count"`
	NegativeCount int `json:"negative_count"`
	NeutralCount  int `json:"neutral_count"`

	PositiveRatio float64 `json:"positive_ratio"`
	NegativeRatio float64 `json:"negative_ratio"`
	NeutralRatio  float64 `json:"neutral_ratio"`
}

// ComputeKPIs derives the headline numbers. The date span covers parsed
// dates only; it is omitted entirely when no record carries one.
func ComputeKPIs(records []review.Record, sentiments []review.Sentiment) (*KPIs, error) {
	if len(records) == 0 {
		return nil, &review.EmptyDatasetError{Op: "kpis"}
	}

	k := &KPIs{
		TotalReviews: len(records),
		MinRating:    math.Inf(1),
		MaxRating:    math.Inf(-1),
	}

	sum := 0.0
	for i := range records {
		r := records[i].Rating
		sum += r
		k.MinRating = math.Min(k.MinRating, r)
		k.MaxRating = math.Max(k.MaxRating, r)

		if ts := records[i].WrittenAt; ts != nil {
			if k.FirstReviewAt == nil || ts.Before(*k.FirstReviewAt) {
				k.FirstReviewAt = ts
			}
			if k.LastReviewAt == nil || ts.After(*k.LastReviewAt) {
				k.LastReviewAt = ts
			}
		}
	}
	k.MeanRating = round2(sum / float64(len(records)))

	for _, s := range sentiments {
		switch s {
		case review.SentimentPositive:
			k.PositiveCount++
		case review.SentimentNegative:
			k.NegativeCount++
		case review.SentimentNeutral:
			k.NeutralCount++
		}
	}
	total := float64(len(records))
	k.PositiveRatio = float64(k.PositiveCount) / total
	k.NegativeRatio = float64(k.NegativeCount) / total
	k.NeutralRatio = float64(k.NeutralCount) / total

	return k, nil
}

// YearStat is one yearly trend bucket.
type YearStat struct {
	Year       int     `json:"year"`
	Count      int     `json:"count"`
	MeanRating float64 `json:"mean_rating"`
}

// QuarterStat is one (year, quarter) trend bucket.
type QuarterStat struct {
	Year       int     `json:"year"`
	Quarter    int     `json:"quarter"`
	Count      int     `json:"count"`
	MeanRating float64 `json:"mean_rating"`
}

// MonthStat is one (year, month) trend bucket.
type MonthStat struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Count      int     `json:"count"`
	MeanRating float64 `json:"mean_rating"`
}

// Trends holds all time-bucketed statistics, sorted chronologically.
// Records with an unknown date are excluded from every bucket.
type Trends struct {
	Yearly    []YearStat    `json:"yearly"`
	Quarterly []QuarterStat `json:"quarterly"`
	Monthly   []MonthStat   `json:"monthly"`
}

type bucket struct {
	count int
	sum   float64
}

// ComputeTrends buckets records by calendar year, quarter and month.
func ComputeTrends(records []review.Record) (*Trends, error) {
	if len(records) == 0 {
		return nil, &review.EmptyDatasetError{Op: "trends"}
	}

	yearly := map[int]*bucket{}
	quarterly := map[[2]int]*bucket{}
	monthly := map[[2]int]*bucket{}

	for i := range records {
		year, ok := records[i].Year()
		if !ok {
			continue
		}
		quarter, _ := records[i].Quarter()
		month, _ := records[i].Month()
		r := records[i].Rating

		add(yearly, year, r)
		add(quarterly, [2]int{year, quarter}, r)
		add(monthly, [2]int{year, month}, r)
	}

	t := &Trends{}
	for year, b := range yearly {
		t.Yearly = append(t.Yearly, YearStat{Year: year, Count: b.count, MeanRating: round2(b.sum / float64(b.count))})
	}
	sort.Slice(t.Yearly, func(i, j int) bool { return t.Yearly[i].Year < t.Yearly[j].Year })

	for key, b := range quarterly {
		t.Quarterly = append(t.Quarterly, QuarterStat{Year: key[0], Quarter: key[1], Count: b.count, MeanRating: round2(b.sum / float64(b.count))})
	}
	sort.Slice(t.Quarterly, func(i, j int) bool {
		a, b := t.Quarterly[i], t.Quarterly[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Quarter < b.Quarter
	})

	for key, b := range monthly {
		t.Monthly = append(t.Monthly, MonthStat{Year: key[0], Month: key[1], Count: b.count, MeanRating: round2(b.sum / float64(b.count))})
	}
	sort.Slice(t.Monthly, func(i, j int) bool {
		a, b := t.Monthly[i], t.Monthly[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	return t, nil
}

func add[K comparable](m map[K]*bucket, key K, rating float64) {
	b, ok := m[key]
	if !ok {
		b = &bucket{}
		m[key] = b
	}
	b.count++
	b.sum += rating
}

// YearSentiment is the per-year sentiment count breakdown.
type YearSentiment struct {
	Year     int `json:"year"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// ComputeSentimentTrend counts sentiment labels per calendar year.
func ComputeSentimentTrend(records []review.Record, sentiments []review.Sentiment) ([]YearSentiment, error) {
	if len(records) == 0 {
		return nil, &review.EmptyDatasetError{Op: "sentiment trend"}
	}

	byYear := map[int]*YearSentiment{}
	for i := range records {
		year, ok := records[i].Year()
		if !ok {
			continue
		}
		ys, ok := byYear[year]
		if !ok {
			ys = &YearSentiment{Year: year}
			byYear[year] = ys
		}
		switch sentiments[i] {
		case review.SentimentPositive:
			ys.Positive++
		case review.SentimentNegative:
			ys.Negative++
		case review.SentimentNeutral:
			ys.Neutral++
		}
	}

	out := make([]YearSentiment, 0, len(byYear))
	for _, ys := range byYear {
		out = append(out, *ys)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// CategoryStats are per-aspect or per-segment statistics. Ratios are
// percentages rounded to one decimal; a category with zero matches is
// still reported with all-zero values, never omitted.
type CategoryStats struct {
	Name       string  `json:"name"`
	Matched    int     `json:"matched"`
	MeanRating float64 `json:"mean_rating"`

	PositiveCount int `json:"positive_count"`
	NegativeCount int `json:"negative_count"`
	NeutralCount  int `json:"neutral_count"`

	PositivePct float64 `json:"positive_pct"`
	NegativePct float64 `json:"negative_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
}

// ComputeCategoryStats derives statistics for every category in the
// membership matrix, in declaration order.
func ComputeCategoryStats(records []review.Record, sentiments []review.Sentiment, membership *classify.Membership) ([]CategoryStats, error) {
	if len(records) == 0 {
		return nil, &review.EmptyDatasetError{Op: "category stats"}
	}

	out := make([]CategoryStats, 0, len(membership.Categories()))
	for _, name := range membership.Categories() {
		stats := CategoryStats{Name: name}
		mask := membership.Mask(name)

		sum := 0.0
		for i, matched := range mask {
			if !matched {
				continue
			}
			stats.Matched++
			sum += records[i].Rating
			switch sentiments[i] {
			case review.SentimentPositive:
				stats.PositiveCount++
			case review.SentimentNegative:
				stats.NegativeCount++
			case review.SentimentNeutral:
				stats.NeutralCount++
			}
		}

		if stats.Matched > 0 {
			n := float64(stats.Matched)
			stats.MeanRating = round2(sum / n)
			stats.PositivePct = round1(float64(stats.PositiveCount) / n * 100)
			stats.NegativePct = round1(float64(stats.NegativeCount) / n * 100)
			stats.NeutralPct = round1(float64(stats.NeutralCount) / n * 100)
		}
		out = append(out, stats)
	}
	return out, nil
}

// KeywordCount is one negative keyword with its raw occurrence count.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// NegativeKeywordCounts counts raw substring occurrences of each keyword
// within the canonical text of negative-labeled records only, and returns
// the top N by count. Overlap-free occurrence counting (strings.Count
// semantics), not membership: a keyword repeated in one review counts each
// time. Ties preserve lexicon declaration order; zero-count keywords are
// omitted.
func NegativeKeywordCounts(texts []string, sentiments []review.Sentiment, keywords []string, topN int) []KeywordCount {
	var negative []string
	for i, s := range sentiments {
		if s == review.SentimentNegative {
			negative = append(negative, texts[i])
		}
	}
	if len(negative) == 0 || topN <= 0 {
		return nil
	}
	joined := strings.Join(negative, " ")

	counts := make([]KeywordCount, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if n := strings.Count(joined, kw); n > 0 {
			counts = append(counts, KeywordCount{Keyword: kw, Count: n})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if len(counts) > topN {
		counts = counts[:topN]
	}
	return counts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
