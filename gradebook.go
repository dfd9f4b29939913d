// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import (
	"fmt"
	"strconv"
)

// Student of a roster.
type Student struct {
	LastName, FirstName, Email string
}

// Gradebook describes an empty assignment sheet.
type Gradebook struct {
	// Sheet is the assignment name.
	Sheet string
	// Title goes to row 1, which is never taken for the header.
	Title     string
	SubGrades []string
	Students  []Student
}

// StatsLabels name the trailing aggregate rows; rows past these are numbered.
var StatsLabels = []string{"Mean", "Mode", "Min", "Max"}

func statsLabel(i int) string {
	if i < len(StatsLabels) {
		return StatsLabels[i]
	}
	return "Stat " + strconv.Itoa(i+1)
}

// WriteGradebook writes gb in the layout of cfg: title, header, one row per
// student, then cfg.StatsRows statistics rows.
//
// The sub-grades start at cfg.SubGradeFrom and must be the last columns,
// as the reader takes the sub-grades up to the last used column.
func WriteGradebook(w Writer, cfg Config, gb Gradebook) error {
	cols := cfg.Columns
	subFrom, err := LetterToColumn(cfg.SubGradeFrom)
	if err != nil {
		return fmt.Errorf("sub-grade column: %w", err)
	}
	width := subFrom + len(gb.SubGrades) - 1
	for _, c := range []string{cfg.HeaderColumn, cols.LastName, cols.FirstName, cols.Email, cols.Grade, cols.Comment} {
		n, err := LetterToColumn(c)
		if err != nil {
			return fmt.Errorf("%q: %w", c, err)
		}
		if len(gb.SubGrades) != 0 && n >= subFrom {
			return fmt.Errorf("column %s is not before the sub-grades (%s)", c, cfg.SubGradeFrom)
		}
		width = max(width, n)
	}
	columns := make([]Column, width)
	grade, _ := LetterToColumn(cols.Grade)
	columns[grade-1].Column.Format = "0.00"

	sheet, err := w.NewSheet(gb.Sheet, columns)
	if err != nil {
		return err
	}
	row := func(set func(put func(column string, v any))) error {
		values := make([]any, width)
		set(func(column string, v any) {
			if c, err := LetterToColumn(column); err == nil && c <= width {
				values[c-1] = v
			}
		})
		return sheet.AppendRow(values...)
	}

	if err = row(func(put func(string, any)) { put(cfg.HeaderColumn, gb.Title) }); err != nil {
		return err
	}
	if err = row(func(put func(string, any)) {
		put(cfg.HeaderColumn, "#")
		put(cols.LastName, "Last name")
		put(cols.FirstName, "First name")
		put(cols.Email, "Email")
		put(cols.Grade, "Grade")
		put(cols.Comment, "Comment")
		for i, s := range gb.SubGrades {
			put(ColumnToLetter(subFrom+i), s)
		}
	}); err != nil {
		return err
	}
	for i, st := range gb.Students {
		if err = row(func(put func(string, any)) {
			put(cfg.HeaderColumn, strconv.Itoa(i+1))
			put(cols.LastName, st.LastName)
			put(cols.FirstName, st.FirstName)
			put(cols.Email, st.Email)
		}); err != nil {
			return fmt.Errorf("%s: %w", st.Email, err)
		}
	}
	for i := 0; i < cfg.StatsRows; i++ {
		if err = row(func(put func(string, any)) { put(cfg.HeaderColumn, statsLabel(i)) }); err != nil {
			return err
		}
	}
	return sheet.Close()
}
