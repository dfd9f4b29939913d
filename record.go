// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnMap holds the column letters of the per-student fields.
type ColumnMap struct {
	LastName, FirstName, Email, Grade, Comment string
}

// DefaultColumns is the layout of the gradebook template.
var DefaultColumns = ColumnMap{LastName: "A", FirstName: "B", Email: "D", Grade: "F", Comment: "G"}

// SubGradeColumns is the inclusive column span of the sub-grades.
type SubGradeColumns struct {
	From, To string
}

// SubGrade is one named component score.
type SubGrade struct {
	Label, Value string
}

// Record is one student's row.
type Record struct {
	Row       int
	LastName  string
	FirstName string
	Email     string
	Grade     string
	Comment   string
	SubGrades []SubGrade
}

// Name is "last, first".
func (rec Record) Name() string { return rec.LastName + ", " + rec.FirstName }

// GradeValue returns the grade as a number, ok is false if it is not numeric.
func (rec Record) GradeValue() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(rec.Grade), 64)
	return f, err == nil
}

// Extract reads the record of the student in row.
// The sub-grade labels are read from the header row.
func Extract(sheet Sheet, row int, cols ColumnMap, sub SubGradeColumns, header int) (Record, error) {
	rec := Record{Row: row}
	for _, f := range []struct {
		dest   *string
		column string
	}{
		{&rec.LastName, cols.LastName},
		{&rec.FirstName, cols.FirstName},
		{&rec.Email, cols.Email},
		{&rec.Grade, cols.Grade},
		{&rec.Comment, cols.Comment},
	} {
		addr := Cell(f.column, row)
		v, err := sheet.Cell(addr)
		if err != nil {
			return rec, fmt.Errorf("%s[%s]: %w", sheet.Name(), addr, err)
		}
		*f.dest = v
	}

	if sub.From == "" || sub.To == "" {
		return rec, nil
	}
	from, err := LetterToColumn(sub.From)
	if err != nil {
		return rec, err
	}
	to, err := LetterToColumn(sub.To)
	if err != nil {
		return rec, err
	}
	if to < from {
		return rec, nil
	}
	labels, err := sheet.Range(Cell(sub.From, header), Cell(sub.To, header))
	if err != nil {
		return rec, fmt.Errorf("%s header: %w", sheet.Name(), err)
	}
	values, err := sheet.Range(Cell(sub.From, row), Cell(sub.To, row))
	if err != nil {
		return rec, fmt.Errorf("%s row %d: %w", sheet.Name(), row, err)
	}
	if len(labels) != 1 || len(values) != 1 || len(labels[0]) != len(values[0]) {
		return rec, fmt.Errorf("%s %s:%s: %w", sheet.Name(), sub.From, sub.To, ErrRangeMismatch)
	}
	rec.SubGrades = make([]SubGrade, len(labels[0]))
	for i, label := range labels[0] {
		rec.SubGrades[i] = SubGrade{Label: label, Value: values[0][i]}
	}
	return rec, nil
}
