// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UNO-SOFT/gradereport"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestColumnNamesMatchExcelize(t *testing.T) {
	for n := 1; n <= excelize.MaxColumns; n++ {
		want, err := excelize.ColumnNumberToName(n)
		if err != nil {
			t.Fatal(err)
		}
		if got := gradereport.ColumnToLetter(n); got != want {
			t.Fatalf("%d: got %q, wanted %q", n, got, want)
		}
	}
}

func writeTestBook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "HW1"); err != nil {
		t.Fatal(err)
	}
	for axis, v := range map[string]any{
		"A1": "COMP 4610",
		"A2": "Last name", "B2": "First name", "D2": "Email", "F2": "Grade", "G2": "Comment",
		"H2": "Quiz1", "I2": "Quiz2",
		"A3": "Doe", "B3": "Jane", "D3": "jane@x.edu", "F3": 91.5, "G3": "<ok>", "H3": 9, "I3": 10,
		"A4": "Mean", "A5": "Mode", "A6": "Min", "A7": "Max",
	} {
		if err := f.SetCellValue("HW1", axis, v); err != nil {
			t.Fatal(err)
		}
	}
	fn := filepath.Join(t.TempDir(), "grades.xlsx")
	if err := f.SaveAs(fn); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return fn
}

func TestSheet(t *testing.T) {
	sh, err := Open(writeTestBook(t), "")
	if err != nil {
		t.Fatal(err)
	}
	defer sh.Close()
	if sh.Name() != "HW1" {
		t.Errorf("name: %q", sh.Name())
	}
	if n, err := sh.LastRow(); err != nil || n != 7 {
		t.Errorf("LastRow: %d, %v", n, err)
	}
	if n, err := sh.LastColumn(); err != nil || n != 9 {
		t.Errorf("LastColumn: %d, %v", n, err)
	}

	rec, err := gradereport.Extract(sh, 3, gradereport.DefaultColumns,
		gradereport.SubGradeColumns{From: "H", To: "I"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := gradereport.Record{
		Row: 3, LastName: "Doe", FirstName: "Jane", Email: "jane@x.edu", Grade: "91.5", Comment: "<ok>",
		SubGrades: []gradereport.SubGrade{{Label: "Quiz1", Value: "9"}, {Label: "Quiz2", Value: "10"}},
	}
	if d := cmp.Diff(want, rec); d != "" {
		t.Error(d)
	}

	if _, err := Open(writeTestBook(t), "nope"); err == nil {
		t.Error("missing sheet: wanted error")
	}
}

func TestWriteGradebook(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	gb := gradereport.Gradebook{
		Sheet: "HW2", Title: "COMP 4610 - HW2",
		SubGrades: []string{"Part A", "Part B", "Part C"},
		Students: []gradereport.Student{
			{LastName: "Doe", FirstName: "Jane", Email: "jane@x.edu"},
			{LastName: "Roe", FirstName: "Rich", Email: "rr@x.edu"},
		},
	}
	if err := gradereport.WriteGradebook(w, gradereport.DefaultConfig, gb); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	fn := filepath.Join(t.TempDir(), "hw2.xlsx")
	if err := os.WriteFile(fn, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	sh, err := Open(fn, "HW2")
	if err != nil {
		t.Fatal(err)
	}
	defer sh.Close()
	c := &gradereport.Controller{Config: gradereport.DefaultConfig, Sheet: sh}
	lay, err := c.Layout(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	wantLay := gradereport.Layout{
		Header:    2,
		Students:  gradereport.RowRange{From: 3, To: 4},
		SubGrades: gradereport.SubGradeColumns{From: "H", To: "J"},
	}
	if d := cmp.Diff(wantLay, lay); d != "" {
		t.Error(d)
	}
	labels, err := sh.Range(gradereport.Cell("H", 2), gradereport.Cell("J", 2))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([][]string{{"Part A", "Part B", "Part C"}}, labels); d != "" {
		t.Error(d)
	}
	if v, _ := sh.Cell(gradereport.Cell("D", 4)); v != "rr@x.edu" {
		t.Errorf("D4: %q", v)
	}
}

func TestSheetFormattedGrades(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	const name = "Sheet1"
	for axis, v := range map[string]any{
		"A2": "Last name", "F2": "Grade",
		"A3": "Doe", "B3": "Jane", "D3": "jane@x.edu", "F3": 91.456,
		"A4": "Roe", "B4": "Rich", "D4": "rr@x.edu", "F4": 0.915,
	} {
		if err := f.SetCellValue(name, axis, v); err != nil {
			t.Fatal(err)
		}
	}
	integer := "0"
	intStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &integer})
	if err != nil {
		t.Fatal(err)
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: 9}) // 0%
	if err != nil {
		t.Fatal(err)
	}
	if err = f.SetCellStyle(name, "F3", "F3", intStyle); err != nil {
		t.Fatal(err)
	}
	if err = f.SetCellStyle(name, "F4", "F4", percentStyle); err != nil {
		t.Fatal(err)
	}
	fn := filepath.Join(t.TempDir(), "formatted.xlsx")
	if err = f.SaveAs(fn); err != nil {
		t.Fatal(err)
	}

	sh, err := Open(fn, "")
	if err != nil {
		t.Fatal(err)
	}
	defer sh.Close()
	for _, tt := range []struct {
		row        int
		cell, html string
	}{
		{3, "91.456", "<td>91.46%</td>"},
		{4, "0.915", "<td>0.92%</td>"},
	} {
		rec, err := gradereport.Extract(sh, tt.row, gradereport.DefaultColumns, gradereport.SubGradeColumns{}, 2)
		if err != nil {
			t.Fatal(err)
		}
		if rec.Grade != tt.cell {
			t.Errorf("row %d: grade cell %q, wanted %q", tt.row, rec.Grade, tt.cell)
		}
		if got := gradereport.Report(rec, "s"); !strings.Contains(got, tt.html) {
			t.Errorf("row %d: %q not in %s", tt.row, tt.html, got)
		}
	}
}

func TestWriteGradebookLayout(t *testing.T) {
	cfg := gradereport.DefaultConfig
	cfg.Columns = gradereport.ColumnMap{LastName: "C", FirstName: "D", Email: "E", Grade: "G", Comment: "H"}
	cfg.HeaderColumn = "B"
	cfg.SubGradeFrom = "K"
	cfg.StatsRows = 2

	var buf bytes.Buffer
	w := NewWriter(&buf)
	gb := gradereport.Gradebook{
		Sheet:     "Lab3",
		SubGrades: []string{"Q1", "Q2"},
		Students: []gradereport.Student{
			{LastName: "Doe", FirstName: "Jane", Email: "jane@x.edu"},
			{LastName: "Roe", FirstName: "Rich", Email: "rr@x.edu"},
			{LastName: "Poe", FirstName: "Ed", Email: "ed@x.edu"},
		},
	}
	if err := gradereport.WriteGradebook(w, cfg, gb); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	fn := filepath.Join(t.TempDir(), "lab3.xlsx")
	if err := os.WriteFile(fn, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	sh, err := Open(fn, "")
	if err != nil {
		t.Fatal(err)
	}
	defer sh.Close()

	c := &gradereport.Controller{Config: cfg, Sheet: sh}
	lay, err := c.Layout(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	want := gradereport.Layout{
		Header:    2,
		Students:  gradereport.RowRange{From: 3, To: 5},
		SubGrades: gradereport.SubGradeColumns{From: "K", To: "L"},
	}
	if d := cmp.Diff(want, lay); d != "" {
		t.Error(d)
	}
	rec, err := gradereport.Extract(sh, 5, cfg.Columns, lay.SubGrades, lay.Header)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Name() != "Poe, Ed" || rec.Email != "ed@x.edu" {
		t.Errorf("got %+v", rec)
	}
	if d := cmp.Diff([]gradereport.SubGrade{{Label: "Q1"}, {Label: "Q2"}}, rec.SubGrades); d != "" {
		t.Error(d)
	}

	bad := cfg
	bad.SubGradeFrom = "F"
	if err := gradereport.WriteGradebook(NewWriter(&bytes.Buffer{}), bad, gb); err == nil {
		t.Error("sub-grades overlapping the fields: wanted error")
	}
}
