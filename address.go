// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ColumnToLetter returns the spreadsheet label of the 1-based column index
// (1 -> A, 26 -> Z, 27 -> AA).
//
// The numbering is bijective base-26: there is no zero digit.
func ColumnToLetter(col int) string {
	if col < 1 {
		return ""
	}
	var buf [16]byte
	i := len(buf)
	for col > 0 {
		col--
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}

// LetterToColumn is the inverse of ColumnToLetter.
func LetterToColumn(letters string) (int, error) {
	if letters == "" {
		return 0, errors.New("empty column name")
	}
	var col int
	for _, r := range letters {
		switch {
		case 'A' <= r && r <= 'Z':
		case 'a' <= r && r <= 'z':
			r -= 'a' - 'A'
		default:
			return 0, fmt.Errorf("%q: invalid column name", letters)
		}
		col = col*26 + int(r-'A'+1)
	}
	return col, nil
}

// Address of a cell: column letters and 1-based row.
type Address struct {
	Column string
	Row    int
}

// Cell returns the address of the given column and row.
func Cell(column string, row int) Address { return Address{Column: strings.ToUpper(column), Row: row} }

func (a Address) String() string { return a.Column + strconv.Itoa(a.Row) }

// ParseAddress parses an "H5" style cell reference.
func ParseAddress(s string) (Address, error) {
	i := strings.IndexFunc(s, func(r rune) bool { return '0' <= r && r <= '9' })
	if i <= 0 {
		return Address{}, fmt.Errorf("%q: invalid cell address", s)
	}
	if _, err := LetterToColumn(s[:i]); err != nil {
		return Address{}, err
	}
	row, err := strconv.Atoi(s[i:])
	if err != nil {
		return Address{}, fmt.Errorf("%q: %w", s, err)
	}
	if row < 1 {
		return Address{}, fmt.Errorf("%q: invalid row", s)
	}
	return Cell(s[:i], row), nil
}

// FirstNonEmptyRow returns the 1-based row number of the first non-blank value,
// where values[0] is row 1. Row 1 is never considered.
func FirstNonEmptyRow(values []string) (int, error) {
	for i := 1; i < len(values); i++ {
		if strings.TrimSpace(values[i]) != "" {
			return i + 1, nil
		}
	}
	return 0, ErrMissingHeaderRow
}

// RowRange is an inclusive interval of rows.
type RowRange struct {
	From, To int
}

// StudentRows returns the rows between the header and the trailing statistics rows.
func StudentRows(header, lastRow, statsRows int) RowRange {
	return RowRange{From: header + 1, To: lastRow - statsRows}
}

func (r RowRange) Contains(row int) bool { return r.From <= row && row <= r.To }
func (r RowRange) Empty() bool          { return r.To < r.From }
func (r RowRange) Len() int {
	if r.Empty() {
		return 0
	}
	return r.To - r.From + 1
}
func (r RowRange) String() string { return fmt.Sprintf("[%d, %d]", r.From, r.To) }
