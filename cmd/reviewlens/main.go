// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

// Package main is the entry point for the reviewlens command.
//
// Reviewlens is a batch analytics engine for customer reviews. It reads a
// CSV of reviews, cleans and classifies them, aggregates KPIs and trends,
// ranks problem aspects by priority and optionally runs the advanced
// statistical subsystem (rating prediction, topic modeling, change-point
// detection). The complete result bundle is written as JSON.
//
// # Pipeline
//
//  1. Configuration: defaults, optional YAML file, REVIEWLENS_* variables (Koanf v2)
//  2. Ingest: parse the input CSV into a raw table
//  3. Clean: schema validation, rating imputation and clamping, date parsing
//  4. Classify: sentiment labels plus aspect and segment membership
//  5. Aggregate: KPIs, yearly/quarterly/monthly trends, category detail
//  6. Rank: priority scores for every matched aspect
//  7. Advanced (optional): seeded ML sub-analyses with failure isolation
//
// # Example Usage
//
//	reviewlens -input reviews.csv -output bundle.json
//
//	# With the advanced subsystem and console logs
//	reviewlens -input reviews.csv -advanced -log-format console
//
//	# Threshold override without editing the config file
//	REVIEWLENS_SENTIMENT_LOW=5 reviewlens -input reviews.csv
//
// The process exits non-zero when the input schema is invalid or no usable
// ratings exist; advanced sub-analysis failures are reported inside the
// bundle and do not fail the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/reviewlens/internal/config"
	"github.com/tomtom215/reviewlens/internal/engine"
	"github.com/tomtom215/reviewlens/internal/ingest"
	"github.com/tomtom215/reviewlens/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("reviewlens failed")
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "path to YAML config file")
		inputPath   = flag.String("input", "", "path to the review CSV (default: stdin)")
		outputPath  = flag.String("output", "", "path for the JSON result bundle (default: stdout)")
		useAdvanced = flag.Bool("advanced", false, "enable the advanced statistical subsystem")
		logLevel    = flag.String("log-level", "", "log level override (trace..error)")
		logFormat   = flag.String("log-format", "", "log format override (json, console)")
		showVer     = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Println("reviewlens", version)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logging.Format = *logFormat
	}
	if *useAdvanced {
		cfg.Advanced.Enabled = true
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logging.Info().Str("version", version).Msg("reviewlens starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := os.Stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	table, err := ingest.ReadCSV(in)
	if err != nil {
		return err
	}

	bundle, err := engine.Run(ctx, table, cfg)
	if err != nil {
		return err
	}

	out := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return bundle.WriteJSON(out, true)
}
