// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGrid(t *testing.T) {
	g := NewGrid("HW1", nil)
	for _, c := range []struct {
		addr  string
		value string
	}{{"A2", "Last name"}, {"C5", "x"}, {"B3", "y"}} {
		a, err := ParseAddress(c.addr)
		if err != nil {
			t.Fatal(err)
		}
		if err = g.Set(a, c.value); err != nil {
			t.Fatal(err)
		}
	}
	if n, _ := g.LastRow(); n != 5 {
		t.Errorf("LastRow: got %d, wanted 5", n)
	}
	if n, _ := g.LastColumn(); n != 3 {
		t.Errorf("LastColumn: got %d, wanted 3", n)
	}
	if v, err := g.Cell(Cell("b", 3)); err != nil || v != "y" {
		t.Errorf("B3: got %q, %v", v, err)
	}
	if v, err := g.Cell(Cell("Z", 99)); err != nil || v != "" {
		t.Errorf("Z99: got %q, %v", v, err)
	}

	got, err := g.Range(Cell("A", 2), Cell("D", 3))
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"Last name", "", "", ""}, {"", "y", "", ""}}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
	if _, err = g.Range(Cell("D", 2), Cell("A", 2)); err == nil {
		t.Error("reversed range: wanted error")
	}
}

func TestReadCsv(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "HW2.csv")
	if err := os.WriteFile(fn, []byte("COMP 4610 - HW2\nLast name;First name;ID;Email\nDoe;Jane;1;jane@x.edu\n"), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := ReadCsv(fn, "utf-8")
	if err != nil {
		t.Fatal(err)
	}
	if g.Name() != "HW2" {
		t.Errorf("name: got %q", g.Name())
	}
	if v, _ := g.Cell(Cell("D", 3)); v != "jane@x.edu" {
		t.Errorf("D3: got %q", v)
	}
	if v, _ := g.Cell(Cell("A", 1)); v != "COMP 4610 - HW2" {
		t.Errorf("A1: got %q", v)
	}
}

func TestReadCsvCharset(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "latin.csv")
	// "Bézier" in ISO-8859-1
	if err := os.WriteFile(fn, []byte("x,B\xe9zier\n"), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := ReadCsv(fn, "iso-8859-1")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := g.Cell(Cell("B", 1)); v != "Bézier" {
		t.Errorf("got %q", v)
	}
}
