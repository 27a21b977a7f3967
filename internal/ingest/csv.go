// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

// Package ingest reads raw review tables from external formats. It does no
// validation beyond structural parsing; schema checks belong to the cleaner.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/reviewlens/internal/review"
)

// ReadCSV parses a CSV stream into a raw table. The first row is the
// header; header names are trimmed and lowercased so the cleaner's schema
// check is case-insensitive. Every data row must have the header's width
// (enforced by the csv reader).
func ReadCSV(r io.Reader) (*review.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: reading header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}

	table := &review.Table{Columns: columns}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: reading row %d: %w", len(table.Rows)+2, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
