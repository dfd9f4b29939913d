// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package pdf

import (
	"bytes"
	"testing"

	"github.com/UNO-SOFT/gradereport"
)

func TestAttachment(t *testing.T) {
	rec := gradereport.Record{
		Row: 5, LastName: "Doe", FirstName: "Jane", Email: "jane@x.edu",
		Grade: "91.5", Comment: "Good work.\nSee me about <Quiz2>.",
		SubGrades: []gradereport.SubGrade{{Label: "Quiz1", Value: "9"}, {Label: "Quiz2", Value: "10"}},
	}
	a, err := Attacher{}.Attachment(rec, "COMP 4610 - HW1")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "COMP_4610_-_HW1_Doe_Jane.pdf" || a.ContentType != "application/pdf" {
		t.Errorf("got %q %q", a.Name, a.ContentType)
	}
	if !bytes.HasPrefix(a.Data, []byte("%PDF-")) {
		t.Errorf("not a PDF: %q", a.Data[:min(len(a.Data), 16)])
	}
}
