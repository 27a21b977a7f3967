// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package config

import (
	"github.com/tomtom215/reviewlens/internal/review"
)

// Config is the root configuration for an analysis run.
type Config struct {
	Sentiment SentimentConfig `koanf:"sentiment"`
	Priority  PriorityConfig  `koanf:"priority"`

	// Aspects are the product dimensions reviews are classified into.
	Aspects []CategoryConfig `koanf:"aspects" validate:"min=1,dive"`

	// Segments group reviewers (solo, couple, family, ...).
	Segments []CategoryConfig `koanf:"segments" validate:"dive"`

	// Keyword lexicons for feature engineering and the negative-keyword
	// frequency report.
	PositiveKeywords []string `koanf:"positive_keywords"`
	NegativeKeywords []string `koanf:"negative_keywords"`

	// TopNegativeKeywords caps the negative-keyword frequency list.
	TopNegativeKeywords int `koanf:"top_negative_keywords" validate:"gte=1"`

	Advanced AdvancedConfig `koanf:"advanced"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// SentimentConfig holds the rating thresholds that partition reviews into
// positive, negative and neutral. Ratings at or above High are positive,
// at or below Low are negative.
type SentimentConfig struct {
	Low  float64 `koanf:"low" validate:"gte=1,lte=10"`
	High float64 `koanf:"high" validate:"gte=1,lte=10"`
}

// PriorityConfig weighs the two components of the aspect priority score.
// The weights must sum to 1.
type PriorityConfig struct {
	NegativeWeight  float64 `koanf:"negative_weight" validate:"gte=0,lte=1"`
	FrequencyWeight float64 `koanf:"frequency_weight" validate:"gte=0,lte=1"`
}

// CategoryConfig is one named keyword category.
type CategoryConfig struct {
	Name     string   `koanf:"name" validate:"required"`
	Keywords []string `koanf:"keywords" validate:"min=1"`
}

// AdvancedConfig configures the optional statistical subsystem.
type AdvancedConfig struct {
	Enabled bool `koanf:"enabled"`

	RatingPrediction     bool `koanf:"rating_prediction"`
	TopicModeling        bool `koanf:"topic_modeling"`
	ChangePointDetection bool `koanf:"change_point_detection"`

	Seed           int64 `koanf:"seed"`
	Folds          int   `koanf:"folds" validate:"gte=2"`
	ForestTrees    int   `koanf:"forest_trees" validate:"gte=1"`
	ForestMaxDepth int   `koanf:"forest_max_depth" validate:"gte=1"`
	TopFeatures    int   `koanf:"top_features" validate:"gte=1"`

	TopicCount      int     `koanf:"topic_count" validate:"gte=2"`
	TopicTopWords   int     `koanf:"topic_top_words" validate:"gte=1"`
	MaxVocabulary   int     `koanf:"max_vocabulary" validate:"gte=10"`
	MinDocFreq      int     `koanf:"min_doc_freq" validate:"gte=1"`
	MaxDocFreqRatio float64 `koanf:"max_doc_freq_ratio" validate:"gt=0,lte=1"`

	ChangePointPenalty float64 `koanf:"change_point_penalty" validate:"gt=0"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Sentiment: SentimentConfig{
			Low:  6,
			High: 8,
		},
		Priority: PriorityConfig{
			NegativeWeight:  0.7,
			FrequencyWeight: 0.3,
		},
		Aspects: []CategoryConfig{
			{Name: "cleanliness", Keywords: []string{"clean", "dirty", "dust", "stain", "smell", "hygiene"}},
			{Name: "staff", Keywords: []string{"staff", "reception", "service", "friendly", "rude", "helpful"}},
			{Name: "food", Keywords: []string{"breakfast", "dinner", "food", "meal", "restaurant", "coffee"}},
			{Name: "room", Keywords: []string{"room", "bed", "bathroom", "shower", "pillow", "towel"}},
			{Name: "location", Keywords: []string{"location", "station", "distance", "walk", "view", "parking"}},
			{Name: "value", Keywords: []string{"price", "value", "expensive", "cheap", "worth", "cost"}},
		},
		Segments: []CategoryConfig{
			{Name: "solo", Keywords: []string{"solo", "alone", "business trip"}},
			{Name: "couple", Keywords: []string{"couple", "anniversary", "honeymoon", "girlfriend", "boyfriend", "wife", "husband"}},
			{Name: "family", Keywords: []string{"family", "kids", "children", "child", "parents"}},
			{Name: "group", Keywords: []string{"friends", "group", "colleagues"}},
		},
		PositiveKeywords: []string{
			"great", "excellent", "wonderful", "comfortable", "friendly",
			"clean", "delicious", "convenient", "spacious", "quiet",
		},
		NegativeKeywords: []string{
			"dirty", "noisy", "rude", "small", "old", "broken",
			"expensive", "slow", "cold", "uncomfortable", "smell", "wait",
		},
		TopNegativeKeywords: 10,
		Advanced: AdvancedConfig{
			Enabled:              false,
			RatingPrediction:     true,
			TopicModeling:        true,
			ChangePointDetection: true,
			Seed:                 42,
			Folds:                5,
			ForestTrees:          100,
			ForestMaxDepth:       8,
			TopFeatures:          5,
			TopicCount:           5,
			TopicTopWords:        10,
			MaxVocabulary:        1000,
			MinDocFreq:           2,
			MaxDocFreqRatio:      0.95,
			ChangePointPenalty:   5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Thresholds converts the sentiment section into the domain type.
func (c *Config) Thresholds() review.Thresholds {
	return review.Thresholds{Low: c.Sentiment.Low, High: c.Sentiment.High}
}

// AspectCategories converts the aspect section into domain categories.
func (c *Config) AspectCategories() []review.Category {
	return toCategories(c.Aspects)
}

// SegmentCategories converts the segment section into domain categories.
func (c *Config) SegmentCategories() []review.Category {
	return toCategories(c.Segments)
}

func toCategories(cfgs []CategoryConfig) []review.Category {
	out := make([]review.Category, len(cfgs))
	for i, cc := range cfgs {
		out[i] = review.Category{Name: cc.Name, Keywords: cc.Keywords}
	}
	return out
}
