// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package advanced

import (
	"context"
	"fmt"

	"github.com/tomtom215/reviewlens/internal/logging"
	"github.com/tomtom215/reviewlens/internal/review"
)

// Capability identifies an advanced sub-analysis. Each sub-analysis
// declares its capability; the analyzer checks availability once up front
// and records a skipped status instead of branching at call time.
type Capability string

const (
	CapabilityRatingPrediction     Capability = "rating_prediction"
	CapabilityTopicModeling        Capability = "topic_modeling"
	CapabilityChangePointDetection Capability = "change_point_detection"
)

// State is the analyzer lifecycle state.
type State string

const (
	StateIdle            State = "idle"
	StateRunning         State = "running"
	StateSucceeded       State = "succeeded"
	StatePartiallyFailed State = "partially_failed"
	StateFailed          State = "failed"
)

// Status is the outcome of one sub-analysis.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// SubAnalysisResult records the outcome of one sub-analysis run.
type SubAnalysisResult struct {
	Name   Capability `json:"name"`
	Status Status     `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// Artifacts is the immutable output of one analyzer run.
type Artifacts struct {
	State       State               `json:"state"`
	SubAnalyses []SubAnalysisResult `json:"sub_analyses"`

	RatingPrediction *PredictionReport  `json:"rating_prediction,omitempty"`
	Topics           *TopicReport       `json:"topic_modeling,omitempty"`
	ChangePoints     *ChangePointReport `json:"change_point_detection,omitempty"`
}

// Config configures the advanced subsystem. Zero values fall back to
// DefaultConfig equivalents inside New.
type Config struct {
	EnableRatingPrediction     bool
	EnableTopicModeling        bool
	EnableChangePointDetection bool

	// Seed drives every random choice in the subsystem; identical input
	// and seed produce identical artifacts.
	Seed int64

	// Folds is the number of cross-validation folds.
	Folds int

	// ForestTrees and ForestMaxDepth size the ensemble model.
	ForestTrees    int
	ForestMaxDepth int

	// TopFeatures caps the ranked feature-attribution list.
	TopFeatures int

	// TopicCount is the number of non-negative topics to extract;
	// TopicTopWords caps the keyword list per topic.
	TopicCount    int
	TopicTopWords int

	// Vocabulary bounds for the weighted-frequency text representation.
	MaxVocabulary   int
	MinDocFreq      int
	MaxDocFreqRatio float64

	// ChangePointPenalty is the segmentation penalty; higher values
	// yield fewer breakpoints.
	ChangePointPenalty float64
}

// DefaultConfig returns the defaults used when fields are left zero.
func DefaultConfig() Config {
	return Config{
		Seed:               42,
		Folds:              5,
		ForestTrees:        100,
		ForestMaxDepth:     8,
		TopFeatures:        5,
		TopicCount:         5,
		TopicTopWords:      10,
		MaxVocabulary:      1000,
		MinDocFreq:         2,
		MaxDocFreqRatio:    0.95,
		ChangePointPenalty: 5,
	}
}

// Input is everything a run needs: cleaned records, their canonical texts
// (aligned by index) and the lexicons feature engineering counts against.
type Input struct {
	Records          []review.Record
	Texts            []string
	Aspects          []review.Category
	PositiveKeywords []string
	NegativeKeywords []string
}

// Analyzer coordinates the sub-analyses.
type Analyzer struct {
	cfg  Config
	caps map[Capability]bool
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithCapability overrides the availability of one capability. The default
// is available; tests and hosting layers can mark a capability absent to
// have it recorded as skipped.
func WithCapability(c Capability, available bool) Option {
	return func(a *Analyzer) {
		a.caps[c] = available
	}
}

// New creates an analyzer, filling zero config fields with defaults.
func New(cfg Config, opts ...Option) *Analyzer {
	def := DefaultConfig()
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.Folds <= 0 {
		cfg.Folds = def.Folds
	}
	if cfg.ForestTrees <= 0 {
		cfg.ForestTrees = def.ForestTrees
	}
	if cfg.ForestMaxDepth <= 0 {
		cfg.ForestMaxDepth = def.ForestMaxDepth
	}
	if cfg.TopFeatures <= 0 {
		cfg.TopFeatures = def.TopFeatures
	}
	if cfg.TopicCount <= 0 {
		cfg.TopicCount = def.TopicCount
	}
	if cfg.TopicTopWords <= 0 {
		cfg.TopicTopWords = def.TopicTopWords
	}
	if cfg.MaxVocabulary <= 0 {
		cfg.MaxVocabulary = def.MaxVocabulary
	}
	if cfg.MinDocFreq <= 0 {
		cfg.MinDocFreq = def.MinDocFreq
	}
	if cfg.MaxDocFreqRatio <= 0 {
		cfg.MaxDocFreqRatio = def.MaxDocFreqRatio
	}
	if cfg.ChangePointPenalty <= 0 {
		cfg.ChangePointPenalty = def.ChangePointPenalty
	}

	a := &Analyzer{
		cfg: cfg,
		caps: map[Capability]bool{
			CapabilityRatingPrediction:     true,
			CapabilityTopicModeling:        true,
			CapabilityChangePointDetection: true,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes every enabled sub-analysis with per-sub-analysis failure
// isolation. It returns an error only on a precondition failure (empty
// input or failed feature engineering); individual sub-analysis failures
// are recorded in the artifacts instead.
func (a *Analyzer) Run(ctx context.Context, in *Input) (*Artifacts, error) {
	art := &Artifacts{State: StateRunning}

	if len(in.Records) == 0 {
		art.State = StateFailed
		return art, &review.InsufficientDataError{Reason: "advanced analysis requires at least one record"}
	}
	if len(in.Texts) != len(in.Records) {
		art.State = StateFailed
		return art, fmt.Errorf("advanced: %d texts for %d records", len(in.Texts), len(in.Records))
	}

	// Feature engineering is the shared precondition of rating
	// prediction; its failure fails the whole analyzer.
	var features *FeatureSet
	if a.cfg.EnableRatingPrediction && a.available(CapabilityRatingPrediction) {
		fs, err := BuildFeatures(in)
		if err != nil {
			art.State = StateFailed
			art.SubAnalyses = append(art.SubAnalyses, SubAnalysisResult{
				Name:   CapabilityRatingPrediction,
				Status: StatusFailed,
				Error:  err.Error(),
			})
			return art, fmt.Errorf("feature engineering: %w", err)
		}
		features = fs
	}

	if a.cfg.EnableRatingPrediction {
		a.runSub(art, CapabilityRatingPrediction, func() error {
			report, err := a.runRatingPrediction(ctx, features)
			if err != nil {
				return err
			}
			art.RatingPrediction = report
			return nil
		})
	}

	if a.cfg.EnableTopicModeling {
		a.runSub(art, CapabilityTopicModeling, func() error {
			report, err := a.runTopicModeling(ctx, in)
			if err != nil {
				return err
			}
			art.Topics = report
			return nil
		})
	}

	if a.cfg.EnableChangePointDetection {
		a.runSub(art, CapabilityChangePointDetection, func() error {
			report, err := DetectChangePoints(in.Records, a.cfg.ChangePointPenalty)
			if err != nil {
				return err
			}
			art.ChangePoints = report
			return nil
		})
	}

	art.State = aggregateState(art.SubAnalyses)
	return art, nil
}

// available reports capability availability as negotiated at construction.
func (a *Analyzer) available(c Capability) bool {
	return a.caps[c]
}

// runSub executes one sub-analysis and records its outcome. Failures are
// logged and recorded, never propagated.
func (a *Analyzer) runSub(art *Artifacts, name Capability, run func() error) {
	if !a.available(name) {
		logging.Info().Str("sub_analysis", string(name)).Msg("capability unavailable, skipping")
		art.SubAnalyses = append(art.SubAnalyses, SubAnalysisResult{Name: name, Status: StatusSkipped})
		return
	}

	if err := run(); err != nil {
		logging.Error().Err(err).Str("sub_analysis", string(name)).Msg("sub-analysis failed")
		art.SubAnalyses = append(art.SubAnalyses, SubAnalysisResult{
			Name:   name,
			Status: StatusFailed,
			Error:  err.Error(),
		})
		return
	}

	art.SubAnalyses = append(art.SubAnalyses, SubAnalysisResult{Name: name, Status: StatusSucceeded})
}

// aggregateState folds per-sub-analysis outcomes into the analyzer state.
// Skips do not count as failures.
func aggregateState(results []SubAnalysisResult) State {
	failed := 0
	for _, r := range results {
		if r.Status == StatusFailed {
			failed++
		}
	}
	if failed == 0 {
		return StateSucceeded
	}
	return StatePartiallyFailed
}
