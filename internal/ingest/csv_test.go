// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package ingest

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := "Title, Body ,RATING\ngreat stay,clean room,9\nawful,dirty,2\n"
	table, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if !reflect.DeepEqual(table.Columns, []string{"title", "body", "rating"}) {
		t.Errorf("Columns = %v, want normalized lowercase headers", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "great stay" || table.Rows[1][2] != "2" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestReadCSVQuotedFields(t *testing.T) {
	input := "title,body\n\"stay, with comma\",\"line one\nline two\"\n"
	table, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if table.Rows[0][0] != "stay, with comma" {
		t.Errorf("quoted comma field = %q", table.Rows[0][0])
	}
	if !strings.Contains(table.Rows[0][1], "\n") {
		t.Errorf("quoted newline lost: %q", table.Rows[0][1])
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("title,body,rating\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(table.Rows))
	}
}

func TestReadCSVRaggedRow(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n")); err == nil {
		t.Fatal("expected error for ragged row")
	}
}
