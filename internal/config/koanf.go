// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"reviewlens.yaml",
	"reviewlens.yml",
	"/etc/reviewlens/config.yaml",
	"/etc/reviewlens/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "REVIEWLENS_CONFIG"

// envPrefix namespaces the override environment variables.
const envPrefix = "REVIEWLENS_"

// Load builds the configuration from layered sources:
//  1. Defaults: built-in values
//  2. Config file: optional YAML file (explicit path or the first
//     DefaultConfigPaths entry that exists)
//  3. Environment variables: REVIEWLENS_* overrides
//
// Precedence: ENV > file > defaults. The result is validated before it is
// returned.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the explicit config path from the environment or
// the first default path that exists.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings translates override variables (without the REVIEWLENS_
// prefix) to koanf paths. Unmapped variables are ignored so unrelated
// environment noise cannot pollute the config.
var envMappings = map[string]string{
	"SENTIMENT_LOW":             "sentiment.low",
	"SENTIMENT_HIGH":            "sentiment.high",
	"PRIORITY_NEGATIVE_WEIGHT":  "priority.negative_weight",
	"PRIORITY_FREQUENCY_WEIGHT": "priority.frequency_weight",
	"TOP_NEGATIVE_KEYWORDS":     "top_negative_keywords",

	"ADVANCED_ENABLED":                "advanced.enabled",
	"ADVANCED_RATING_PREDICTION":      "advanced.rating_prediction",
	"ADVANCED_TOPIC_MODELING":         "advanced.topic_modeling",
	"ADVANCED_CHANGE_POINT_DETECTION": "advanced.change_point_detection",
	"ADVANCED_SEED":                   "advanced.seed",
	"ADVANCED_FOLDS":                  "advanced.folds",
	"ADVANCED_FOREST_TREES":           "advanced.forest_trees",
	"ADVANCED_FOREST_MAX_DEPTH":       "advanced.forest_max_depth",
	"ADVANCED_TOP_FEATURES":           "advanced.top_features",
	"ADVANCED_TOPIC_COUNT":            "advanced.topic_count",
	"ADVANCED_TOPIC_TOP_WORDS":        "advanced.topic_top_words",
	"ADVANCED_MAX_VOCABULARY":         "advanced.max_vocabulary",
	"ADVANCED_MIN_DOC_FREQ":           "advanced.min_doc_freq",
	"ADVANCED_MAX_DOC_FREQ_RATIO":     "advanced.max_doc_freq_ratio",
	"ADVANCED_CHANGE_POINT_PENALTY":   "advanced.change_point_penalty",

	"LOG_LEVEL":  "logging.level",
	"LOG_FORMAT": "logging.format",
}

// envTransform maps REVIEWLENS_* variables to koanf paths. The config
// path variable is consumed by findConfigFile, not by the tree.
func envTransform(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	if key == strings.TrimPrefix(ConfigPathEnvVar, envPrefix) {
		return ""
	}
	return envMappings[key]
}
