// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import (
	"errors"
	"testing"
)

func TestColumnToLetter(t *testing.T) {
	for _, tt := range []struct {
		col  int
		want string
	}{
		{1, "A"}, {2, "B"}, {26, "Z"}, {27, "AA"}, {52, "AZ"}, {53, "BA"},
		{702, "ZZ"}, {703, "AAA"}, {16384, "XFD"},
		{0, ""}, {-3, ""},
	} {
		if got := ColumnToLetter(tt.col); got != tt.want {
			t.Errorf("ColumnToLetter(%d): got %q, wanted %q", tt.col, got, tt.want)
		}
	}
}

func TestLetterToColumnRoundTrip(t *testing.T) {
	for n := 1; n <= 20000; n++ {
		got, err := LetterToColumn(ColumnToLetter(n))
		if err != nil {
			t.Fatalf("%d: %+v", n, err)
		}
		if got != n {
			t.Fatalf("%d -> %q -> %d", n, ColumnToLetter(n), got)
		}
	}
	if got, err := LetterToColumn("az"); err != nil || got != 52 {
		t.Errorf("az: got %d, %v", got, err)
	}
	for _, s := range []string{"", "A1", "-", "Á"} {
		if _, err := LetterToColumn(s); err == nil {
			t.Errorf("%q: wanted error", s)
		}
	}
}

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress("h5")
	if err != nil {
		t.Fatal(err)
	}
	if a != (Address{Column: "H", Row: 5}) || a.String() != "H5" {
		t.Errorf("got %#v (%s)", a, a)
	}
	for _, s := range []string{"5", "H", "H0", "H-1", "5H", "H5x"} {
		if _, err := ParseAddress(s); err == nil {
			t.Errorf("%q: wanted error", s)
		}
	}
}

func TestFirstNonEmptyRow(t *testing.T) {
	for _, tt := range []struct {
		values []string
		want   int
	}{
		{[]string{"", "", "x", "y"}, 3},
		{[]string{"title", "Last name", "Doe"}, 2},
		{[]string{"", "  ", "\t", "z"}, 4},
	} {
		got, err := FirstNonEmptyRow(tt.values)
		if err != nil {
			t.Errorf("%q: %+v", tt.values, err)
		} else if got != tt.want {
			t.Errorf("%q: got %d, wanted %d", tt.values, got, tt.want)
		}
	}
	for _, values := range [][]string{nil, {"x"}, {"title", "", ""}} {
		if _, err := FirstNonEmptyRow(values); !errors.Is(err, ErrMissingHeaderRow) {
			t.Errorf("%q: got %v, wanted ErrMissingHeaderRow", values, err)
		}
	}
}

func TestStudentRows(t *testing.T) {
	r := StudentRows(3, 20, 4)
	if r != (RowRange{From: 4, To: 16}) {
		t.Errorf("got %s, wanted [4, 16]", r)
	}
	if r.Len() != 13 || !r.Contains(4) || !r.Contains(16) || r.Contains(3) || r.Contains(17) {
		t.Errorf("%s: bad bounds", r)
	}
	if e := StudentRows(2, 6, 4); !e.Empty() || e.Len() != 0 || e.Contains(3) {
		t.Errorf("%s should be empty", e)
	}
}
