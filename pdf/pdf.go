// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

// Package pdf renders the grade report as a PDF attachment.
package pdf

import (
	"strconv"
	"strings"

	"github.com/UNO-SOFT/gradereport"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var _ = (gradereport.Attacher)(Attacher{})

// Attacher renders the report with maroto.
type Attacher struct {
	// FontSize of the body text, 10 if zero.
	FontSize float64
}

var (
	headingProp = props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}
	sectionProp = props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}
)

// Render returns the PDF of the report.
func (a Attacher) Render(rec gradereport.Record, subject string) ([]byte, error) {
	size := a.FontSize
	if size == 0 {
		size = 10
	}
	label := props.Text{Size: size, Style: fontstyle.Bold}
	value := props.Text{Size: size}
	line := size * 0.7

	m := maroto.New(config.NewBuilder().Build())
	m.AddRows(text.NewRow(12, subject, headingProp))

	m.AddRows(text.NewRow(10, "Results", sectionProp))
	grade := rec.Grade
	if f, ok := rec.GradeValue(); ok {
		grade = strconv.FormatFloat(f, 'f', 2, 64)
	}
	for _, kv := range [][2]string{
		{"Name", rec.Name()},
		{"Email", rec.Email},
		{"Grade", grade + "%"},
	} {
		m.AddRow(line, text.NewCol(3, kv[0], label), text.NewCol(9, kv[1], value))
	}

	if len(rec.SubGrades) != 0 {
		m.AddRows(text.NewRow(10, "Breakdown", sectionProp))
		for _, sg := range rec.SubGrades {
			m.AddRow(line, text.NewCol(6, sg.Label, label), text.NewCol(6, sg.Value, value))
		}
	}

	m.AddRows(text.NewRow(10, "Comments", sectionProp))
	for _, s := range strings.Split(rec.Comment, "\n") {
		m.AddRows(text.NewRow(line, s, value))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// Attachment implements gradereport.Attacher.
func (a Attacher) Attachment(rec gradereport.Record, subject string) (gradereport.Attachment, error) {
	b, err := a.Render(rec, subject)
	if err != nil {
		return gradereport.Attachment{}, err
	}
	return gradereport.Attachment{
		Name:        fileName(subject, rec) + ".pdf",
		ContentType: "application/pdf",
		Data:        b,
	}, nil
}

func fileName(subject string, rec gradereport.Record) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, subject+"_"+rec.LastName+"_"+rec.FirstName)
}
