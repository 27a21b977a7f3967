// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

// Package engine orchestrates the analysis pipeline: cleaning,
// classification, aggregation, priority ranking and the optional advanced
// subsystem, assembled into a single immutable ResultBundle.
//
// The core stages are fail-fast: a schema or data error aborts the run.
// The advanced subsystem is isolated: its failures are recorded in the
// bundle but never discard the core results.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/reviewlens/internal/advanced"
	"github.com/tomtom215/reviewlens/internal/aggregate"
	"github.com/tomtom215/reviewlens/internal/classify"
	"github.com/tomtom215/reviewlens/internal/cleaner"
	"github.com/tomtom215/reviewlens/internal/config"
	"github.com/tomtom215/reviewlens/internal/logging"
	"github.com/tomtom215/reviewlens/internal/metrics"
	"github.com/tomtom215/reviewlens/internal/rank"
	"github.com/tomtom215/reviewlens/internal/review"
)

// Run executes the full pipeline over a raw table. Identical input and
// configuration produce an identical bundle (modulo RunID and timestamp).
func Run(ctx context.Context, table *review.Table, cfg *config.Config) (*ResultBundle, error) {
	started := time.Now()
	runID := uuid.New().String()
	ctx = logging.ContextWithRunID(ctx, runID)
	log := logging.Ctx(ctx)

	log.Info().Int("rows", len(table.Rows)).Msg("starting analysis run")

	bundle, err := run(ctx, table, cfg, runID)
	if err != nil {
		metrics.ObserveRun("failed", started, 0)
		log.Error().Err(err).Msg("analysis run failed")
		return nil, err
	}

	metrics.ObserveRun("succeeded", started, bundle.TotalRecords)
	log.Info().
		Int("records", bundle.TotalRecords).
		Dur("elapsed", time.Since(started)).
		Msg("analysis run complete")
	return bundle, nil
}

func run(ctx context.Context, table *review.Table, cfg *config.Config, runID string) (*ResultBundle, error) {
	records, report, err := cleaner.Clean(table)
	if err != nil {
		return nil, err
	}
	metrics.ObserveCleaning(report.ImputedRatings, report.ClampedRatings, report.UnparseableDates)

	classified := classify.Classify(records, cfg.Thresholds(), cfg.AspectCategories(), cfg.SegmentCategories())

	kpis, err := aggregate.ComputeKPIs(records, classified.Sentiments)
	if err != nil {
		return nil, err
	}
	trends, err := aggregate.ComputeTrends(records)
	if err != nil {
		return nil, err
	}
	sentimentTrend, err := aggregate.ComputeSentimentTrend(records, classified.Sentiments)
	if err != nil {
		return nil, err
	}
	aspectStats, err := aggregate.ComputeCategoryStats(records, classified.Sentiments, classified.Aspects)
	if err != nil {
		return nil, err
	}
	segmentStats, err := aggregate.ComputeCategoryStats(records, classified.Sentiments, classified.Segments)
	if err != nil {
		return nil, err
	}

	negatives := aggregate.NegativeKeywordCounts(
		classified.Texts, classified.Sentiments, cfg.NegativeKeywords, cfg.TopNegativeKeywords)

	weights := rank.Weights{
		Negative:  cfg.Priority.NegativeWeight,
		Frequency: cfg.Priority.FrequencyWeight,
	}
	priorities := rank.Scores(aspectStats, weights, len(records))

	bundle := &ResultBundle{
		RunID:            runID,
		GeneratedAt:      time.Now().UTC(),
		TotalRecords:     len(records),
		CleaningReport:   report,
		KPIs:             kpis,
		Trends:           trends,
		SentimentTrend:   sentimentTrend,
		AspectDetail:     aspectStats,
		SegmentDetail:    segmentStats,
		NegativeKeywords: negatives,
		Priorities:       priorities,
		TopPriorities:    rank.Top(priorities, topPriorityCount),
	}

	if cfg.Advanced.Enabled {
		bundle.Advanced = RunAdvanced(ctx, records, classified.Texts, cfg)
	}
	return bundle, nil
}

// RunAdvanced executes the advanced subsystem in isolation. It always
// returns artifacts: on a precondition failure they carry the failed state
// and the core results stay intact.
func RunAdvanced(ctx context.Context, records []review.Record, texts []string, cfg *config.Config) *advanced.Artifacts {
	log := logging.Ctx(ctx)

	analyzer := advanced.New(advanced.Config{
		EnableRatingPrediction:     cfg.Advanced.RatingPrediction,
		EnableTopicModeling:        cfg.Advanced.TopicModeling,
		EnableChangePointDetection: cfg.Advanced.ChangePointDetection,
		Seed:                       cfg.Advanced.Seed,
		Folds:                      cfg.Advanced.Folds,
		ForestTrees:                cfg.Advanced.ForestTrees,
		ForestMaxDepth:             cfg.Advanced.ForestMaxDepth,
		TopFeatures:                cfg.Advanced.TopFeatures,
		TopicCount:                 cfg.Advanced.TopicCount,
		TopicTopWords:              cfg.Advanced.TopicTopWords,
		MaxVocabulary:              cfg.Advanced.MaxVocabulary,
		MinDocFreq:                 cfg.Advanced.MinDocFreq,
		MaxDocFreqRatio:            cfg.Advanced.MaxDocFreqRatio,
		ChangePointPenalty:         cfg.Advanced.ChangePointPenalty,
	})

	artifacts, err := analyzer.Run(ctx, &advanced.Input{
		Records:          records,
		Texts:            texts,
		Aspects:          cfg.AspectCategories(),
		PositiveKeywords: cfg.PositiveKeywords,
		NegativeKeywords: cfg.NegativeKeywords,
	})
	if err != nil {
		log.Warn().Err(err).Msg("advanced analysis failed, core results unaffected")
	}

	for _, sub := range artifacts.SubAnalyses {
		metrics.ObserveSubAnalysis(string(sub.Name), string(sub.Status))
	}
	return artifacts
}
