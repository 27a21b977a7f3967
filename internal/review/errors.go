// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package review

import (
	"fmt"
	"strings"
)

// SchemaError reports required input columns that are absent. It is fatal:
// no partial processing happens when the schema does not match.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input schema invalid, missing required columns: %s",
		strings.Join(e.Missing, ", "))
}

// InsufficientDataError reports a dataset without enough usable values to
// proceed (for example, no parseable rating anywhere). Fatal.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return "insufficient data: " + e.Reason
}

// EmptyDatasetError reports an aggregation attempted over zero records.
// The aggregator refuses to divide by zero silently; callers must
// special-case the empty dataset before aggregating.
type EmptyDatasetError struct {
	Op string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s: cannot aggregate an empty dataset", e.Op)
}
