// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

// Package advanced implements the optional statistical subsystem: rating
// prediction with a small model ensemble and feature attribution, topic
// extraction over canonical text, and change-point detection on the yearly
// mean-rating series.
//
// The three sub-analyses are independent: each is individually enabled,
// each declares a capability that the analyzer checks once before running,
// and a failure in one never aborts the others. Only a failure in feature
// engineering itself (a true precondition failure) fails the whole
// analyzer.
//
// All computation is deterministic given the configured seed.
package advanced
