// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package config

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// weightSumTolerance absorbs float representation error when checking that
// the priority weights sum to 1.
const weightSumTolerance = 1e-9

// Validate checks that the configuration is structurally sound (tag-based
// validation) and semantically consistent (cross-field rules the tags
// cannot express).
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := c.validateSentiment(); err != nil {
		return err
	}
	if err := c.validatePriority(); err != nil {
		return err
	}
	return c.validateCategoryNames()
}

// validateSentiment enforces Low < High; equal thresholds would leave no
// neutral band and inverted ones would label every review both ways.
func (c *Config) validateSentiment() error {
	if c.Sentiment.Low >= c.Sentiment.High {
		return fmt.Errorf("sentiment.low (%v) must be below sentiment.high (%v)",
			c.Sentiment.Low, c.Sentiment.High)
	}
	return nil
}

// validatePriority enforces that the score weights form a convex
// combination.
func (c *Config) validatePriority() error {
	sum := c.Priority.NegativeWeight + c.Priority.FrequencyWeight
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("priority weights must sum to 1, got %v", sum)
	}
	return nil
}

// validateCategoryNames rejects duplicate names within the aspect and
// segment lists; downstream reports key on the name.
func (c *Config) validateCategoryNames() error {
	for _, group := range []struct {
		kind string
		list []CategoryConfig
	}{
		{"aspects", c.Aspects},
		{"segments", c.Segments},
	} {
		seen := make(map[string]struct{}, len(group.list))
		for _, cat := range group.list {
			if _, dup := seen[cat.Name]; dup {
				return fmt.Errorf("%s: duplicate category name %q", group.kind, cat.Name)
			}
			seen[cat.Name] = struct{}{}
		}
	}
	return nil
}
