// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"

	"github.com/UNO-SOFT/gradereport"
	"github.com/xuri/excelize/v2"
)

var _ = (gradereport.Sheet)((*Sheet)(nil))

// rawValues reads the stored values instead of the number-formatted display strings.
var rawValues = excelize.Options{RawCellValue: true}

// Sheet reads one sheet of an excelize workbook.
type Sheet struct {
	xl   *excelize.File
	name string

	// bounds is the cell data, loaded on first LastRow/LastColumn call.
	bounds *gradereport.Grid
}

// Open the workbook at path and return its sheet named sheetName,
// the active sheet if sheetName is empty.
//
// Close the returned Sheet to release the workbook.
func Open(path, sheetName string) (*Sheet, error) {
	xl, err := excelize.OpenFile(path, rawValues)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	sh, err := NewSheet(xl, sheetName)
	if err != nil {
		xl.Close()
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return sh, nil
}

// NewSheet returns the sheetName sheet of xl (the active one if sheetName is empty).
func NewSheet(xl *excelize.File, sheetName string) (*Sheet, error) {
	if sheetName == "" {
		sheetName = xl.GetSheetName(xl.GetActiveSheetIndex())
	}
	idx, err := xl.GetSheetIndex(sheetName)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q not found (have %q)", sheetName, xl.GetSheetList())
	}
	return &Sheet{xl: xl, name: sheetName}, nil
}

func (sh *Sheet) Close() error { return sh.xl.Close() }
func (sh *Sheet) Name() string { return sh.name }

func (sh *Sheet) Cell(addr gradereport.Address) (string, error) {
	v, err := sh.xl.GetCellValue(sh.name, addr.String(), rawValues)
	if err != nil {
		return "", fmt.Errorf("%s[%s]: %w", sh.name, addr, err)
	}
	return v, nil
}

func (sh *Sheet) Range(from, to gradereport.Address) ([][]string, error) {
	return gradereport.ReadRange(from, to, func(row, col int) (string, error) {
		axis, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return "", err
		}
		return sh.xl.GetCellValue(sh.name, axis, rawValues)
	})
}

func (sh *Sheet) LastRow() (int, error) {
	g, err := sh.grid()
	if err != nil {
		return 0, err
	}
	return g.LastRow()
}

func (sh *Sheet) LastColumn() (int, error) {
	g, err := sh.grid()
	if err != nil {
		return 0, err
	}
	return g.LastColumn()
}

func (sh *Sheet) grid() (*gradereport.Grid, error) {
	if sh.bounds != nil {
		return sh.bounds, nil
	}
	rows, err := sh.xl.GetRows(sh.name, rawValues)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sh.name, err)
	}
	sh.bounds = gradereport.NewGrid(sh.name, rows)
	return sh.bounds, nil
}
