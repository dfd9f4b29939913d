// Copyright 2020, 2023, 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/UNO-SOFT/gradereport"
	"github.com/xuri/excelize/v2"
)

var _ = (gradereport.Writer)((*Writer)(nil))

type Writer struct {
	w      io.Writer
	xl     *excelize.File
	styles map[string]int
	sheets []string
	mu     sync.Mutex
}

type rowWriter struct {
	xl   *excelize.File
	Name string
	row  int64
	mu   sync.Mutex
}

// NewWriter returns a new gradereport.Writer.
//
// This writer allows concurrent writes to separate sheets.
//
// This writer collects everything in memory, so big sheets may impose problems.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, xl: excelize.NewFile()}
}

func (xlw *Writer) Close() error {
	if xlw == nil {
		return nil
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xl, w := xlw.xl, xlw.w
	xlw.xl, xlw.w = nil, nil
	if xl == nil || w == nil {
		return nil
	}
	_, err := xl.WriteTo(w)
	return err
}

func (xlw *Writer) NewSheet(name string, columns []gradereport.Column) (gradereport.RowWriter, error) {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xlw.sheets = append(xlw.sheets, name)
	if len(xlw.sheets) == 1 { // first
		if err := xlw.xl.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	} else if _, err := xlw.xl.NewSheet(name); err != nil {
		return nil, err
	}
	var hasHeader bool
	for i, c := range columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if s := xlw.getStyle(c.Column); s != 0 {
			if err = xlw.xl.SetColStyle(name, col, s); err != nil {
				return nil, err
			}
		}
		if s := xlw.getStyle(c.Header); s != 0 {
			if err = xlw.xl.SetCellStyle(name, col+"1", col+"1", s); err != nil {
				return nil, err
			}
		}
		if c.Name != "" {
			hasHeader = true
			if err = xlw.xl.SetCellStr(name, col+"1", c.Name); err != nil {
				return nil, err
			}
		}
	}
	rw := &rowWriter{xl: xlw.xl, Name: name}
	if hasHeader {
		rw.row++
	}
	return rw, nil
}

func (xlw *Writer) getStyle(style gradereport.Style) int {
	if !style.FontBold && style.Format == "" {
		return 0
	}
	k := fmt.Sprintf("%t\t%s", style.FontBold, style.Format)
	s, ok := xlw.styles[k]
	if ok {
		return s
	}
	var st excelize.Style
	if style.FontBold {
		st.Font = &excelize.Font{Bold: true}
	}
	if style.Format != "" {
		st.CustomNumFmt = &style.Format
	}
	s, err := xlw.xl.NewStyle(&st)
	if err != nil {
		panic(err)
	}
	if xlw.styles == nil {
		xlw.styles = make(map[string]int)
	}
	xlw.styles[k] = s
	return s
}

// MaxRowCount is the number of maximum rows.
const MaxRowCount = 1_048_576

func (rw *rowWriter) Close() error { return nil }

// AppendRow writes values into the next row. nil values leave the cell empty.
func (rw *rowWriter) AppendRow(values ...any) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.row >= MaxRowCount {
		return gradereport.ErrTooManyRows
	}
	rw.row++
	for i, v := range values {
		if v == nil {
			continue
		}
		axis, err := excelize.CoordinatesToCellName(i+1, int(rw.row))
		if err != nil {
			return fmt.Errorf("%d/%d: %w", i, int(rw.row), err)
		}
		switch x := v.(type) {
		case time.Time:
			if x.IsZero() {
				continue
			}
			err = rw.xl.SetCellStr(rw.Name, axis, x.Format("2006-01-02"))
		case float64:
			err = rw.xl.SetCellFloat(rw.Name, axis, x, -1, 64)
		case string:
			err = rw.xl.SetCellStr(rw.Name, axis, x)
		case fmt.Stringer:
			err = rw.xl.SetCellStr(rw.Name, axis, x.String())
		default:
			err = rw.xl.SetCellValue(rw.Name, axis, v)
		}
		if err != nil {
			return fmt.Errorf("%s[%s]: %w", rw.Name, axis, err)
		}
	}
	return nil
}
