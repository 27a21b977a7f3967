// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reviewlens/internal/advanced"
	"github.com/tomtom215/reviewlens/internal/aggregate"
	"github.com/tomtom215/reviewlens/internal/cleaner"
	"github.com/tomtom215/reviewlens/internal/rank"
)

// topPriorityCount is the size of the headline priority list.
const topPriorityCount = 3

// ResultBundle is the complete output of one analysis run: every report the
// pipeline produced, keyed by a unique run ID. A bundle is immutable once
// assembled.
type ResultBundle struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalRecords   int             `json:"total_records"`
	CleaningReport *cleaner.Report `json:"cleaning_report"`

	KPIs           *aggregate.KPIs           `json:"kpis"`
	Trends         *aggregate.Trends         `json:"trends"`
	SentimentTrend []aggregate.YearSentiment `json:"sentiment_trend"`

	AspectDetail  []aggregate.CategoryStats `json:"aspect_detail"`
	SegmentDetail []aggregate.CategoryStats `json:"segment_detail"`

	NegativeKeywords []aggregate.KeywordCount `json:"negative_keywords"`

	Priorities    []rank.Priority `json:"priorities"`
	TopPriorities []rank.Priority `json:"top_priorities"`

	// Advanced is present only when the advanced subsystem ran.
	Advanced *advanced.Artifacts `json:"advanced,omitempty"`
}

// WriteJSON serializes the bundle to the writer, optionally indented.
func (b *ResultBundle) WriteJSON(w io.Writer, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding result bundle: %w", err)
	}
	return nil
}
