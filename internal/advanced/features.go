// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package advanced

import (
	"fmt"
	"strings"
)

// FeatureSet is the numeric design matrix for rating prediction. Rows are
// aligned with the input records; Target carries the rating per record.
type FeatureSet struct {
	Names  []string
	Rows   [][]float64
	Target []float64
}

// BuildFeatures derives per-record numeric features: text lengths per
// field and total, calendar features (zero when the date is unknown),
// per-aspect keyword counts, positive/negative keyword counts and the
// Laplace-smoothed sentiment ratios count / (pos + neg + 1).
func BuildFeatures(in *Input) (*FeatureSet, error) {
	if len(in.Records) == 0 {
		return nil, fmt.Errorf("no records to featurize")
	}

	names := []string{
		"title_length",
		"body_length",
		"short_evaluation_length",
		"total_text_length",
		"year",
		"month",
		"quarter",
		"weekday",
	}
	for _, aspect := range in.Aspects {
		names = append(names, aspect.Name+"_keywords")
	}
	names = append(names,
		"negative_keywords",
		"positive_keywords",
		"positive_ratio",
		"negative_ratio",
	)

	fs := &FeatureSet{
		Names:  names,
		Rows:   make([][]float64, len(in.Records)),
		Target: make([]float64, len(in.Records)),
	}

	for i := range in.Records {
		rec := &in.Records[i]
		text := in.Texts[i]

		row := make([]float64, 0, len(names))
		titleLen := float64(len([]rune(rec.Title)))
		bodyLen := float64(len([]rune(rec.Body)))
		evalLen := float64(len([]rune(rec.ShortEvaluation)))
		row = append(row, titleLen, bodyLen, evalLen, titleLen+bodyLen+evalLen)

		year, _ := rec.Year()
		month, _ := rec.Month()
		quarter, _ := rec.Quarter()
		weekday, _ := rec.Weekday()
		row = append(row, float64(year), float64(month), float64(quarter), float64(weekday))

		for _, aspect := range in.Aspects {
			row = append(row, float64(keywordHits(text, aspect.Keywords)))
		}

		neg := float64(keywordHits(text, in.NegativeKeywords))
		pos := float64(keywordHits(text, in.PositiveKeywords))
		row = append(row, neg, pos)

		// Laplace-style smoothing keeps the ratios defined on texts
		// without any keyword hit.
		row = append(row, pos/(pos+neg+1), neg/(pos+neg+1))

		fs.Rows[i] = row
		fs.Target[i] = rec.Rating
	}

	return fs, nil
}

// keywordHits counts how many lexicon keywords occur in the text (one per
// keyword, regardless of repetition).
func keywordHits(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
