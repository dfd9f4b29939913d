// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import (
	"fmt"
	"strings"
)

// Sheet is read access to one sheet of a workbook.
//
// Cell values are returned as their displayed strings.
type Sheet interface {
	Name() string
	Cell(Address) (string, error)
	// Range returns the rectangle between from and to (inclusive),
	// always len(rows) = to.Row-from.Row+1 and every row the same width.
	Range(from, to Address) ([][]string, error)
	LastRow() (int, error)
	LastColumn() (int, error)
}

// Grid is an in-memory Sheet, rows[0] is row 1.
type Grid struct {
	name string
	rows [][]string
}

var _ Sheet = (*Grid)(nil)

// NewGrid returns a Grid named name. rows is not copied.
func NewGrid(name string, rows [][]string) *Grid { return &Grid{name: name, rows: rows} }

func (g *Grid) Name() string { return g.name }

// Set the value of the cell at addr, growing the grid as needed.
func (g *Grid) Set(addr Address, value string) error {
	col, err := LetterToColumn(addr.Column)
	if err != nil {
		return err
	}
	if addr.Row < 1 {
		return fmt.Errorf("%s: invalid row", addr)
	}
	for len(g.rows) < addr.Row {
		g.rows = append(g.rows, nil)
	}
	row := g.rows[addr.Row-1]
	for len(row) < col {
		row = append(row, "")
	}
	row[col-1] = value
	g.rows[addr.Row-1] = row
	return nil
}

func (g *Grid) value(row, col int) string {
	if row < 1 || row > len(g.rows) {
		return ""
	}
	if r := g.rows[row-1]; col >= 1 && col <= len(r) {
		return r[col-1]
	}
	return ""
}

func (g *Grid) Cell(addr Address) (string, error) {
	col, err := LetterToColumn(addr.Column)
	if err != nil {
		return "", fmt.Errorf("%s[%s]: %w", g.name, addr, err)
	}
	return g.value(addr.Row, col), nil
}

func (g *Grid) Range(from, to Address) ([][]string, error) {
	return ReadRange(from, to, func(row, col int) (string, error) { return g.value(row, col), nil })
}

// LastRow returns the last row holding a non-blank value.
func (g *Grid) LastRow() (int, error) {
	for i := len(g.rows) - 1; i >= 0; i-- {
		for _, v := range g.rows[i] {
			if strings.TrimSpace(v) != "" {
				return i + 1, nil
			}
		}
	}
	return 0, nil
}

// LastColumn returns the last column holding a non-blank value.
func (g *Grid) LastColumn() (int, error) {
	var n int
	for _, r := range g.rows {
		for j := len(r) - 1; j >= n; j-- {
			if strings.TrimSpace(r[j]) != "" {
				n = j + 1
				break
			}
		}
	}
	return n, nil
}

// ReadRange collects the rectangle from:to using get(row, col),
// row and col being 1-based.
func ReadRange(from, to Address, get func(row, col int) (string, error)) ([][]string, error) {
	c1, err := LetterToColumn(from.Column)
	if err != nil {
		return nil, err
	}
	c2, err := LetterToColumn(to.Column)
	if err != nil {
		return nil, err
	}
	if c2 < c1 || to.Row < from.Row {
		return nil, fmt.Errorf("%s:%s: invalid range", from, to)
	}
	rows := make([][]string, 0, to.Row-from.Row+1)
	for r := from.Row; r <= to.Row; r++ {
		row := make([]string, 0, c2-c1+1)
		for c := c1; c <= c2; c++ {
			v, err := get(r, c)
			if err != nil {
				return rows, fmt.Errorf("%s%d: %w", ColumnToLetter(c), r, err)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
