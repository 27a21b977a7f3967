// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

/*
Package config provides centralized configuration management for Reviewlens.

Configuration is loaded in layers with clear precedence:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML config file
 3. REVIEWLENS_* environment variables

The config file path comes from the -config flag, the REVIEWLENS_CONFIG
environment variable, or the first DefaultConfigPaths entry that exists.

# Structure

  - SentimentConfig: rating thresholds for the sentiment partition
  - PriorityConfig: weights of the aspect priority score
  - CategoryConfig: named keyword categories (aspects and reviewer segments)
  - AdvancedConfig: the optional statistical subsystem
  - LoggingConfig: process logging

# Environment Variables

Common overrides:

  - REVIEWLENS_SENTIMENT_LOW / REVIEWLENS_SENTIMENT_HIGH
  - REVIEWLENS_PRIORITY_NEGATIVE_WEIGHT / REVIEWLENS_PRIORITY_FREQUENCY_WEIGHT
  - REVIEWLENS_TOP_NEGATIVE_KEYWORDS
  - REVIEWLENS_ADVANCED_ENABLED, REVIEWLENS_ADVANCED_SEED, ...
  - REVIEWLENS_LOG_LEVEL, REVIEWLENS_LOG_FORMAT

Keyword lexicons and category lists are file-only: they are structured
values that do not map cleanly onto flat environment variables.
*/
package config
