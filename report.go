// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import (
	"io"
	"strings"

	"github.com/valyala/quicktemplate"
)

// Inline styles of the breakdown table; mail clients drop <style> blocks.
const (
	tableStyle = ` style="border-collapse: collapse; border: 1px solid black;"`
	cellStyle  = ` style="border: 1px solid black; text-align: center;"`
)

// htmlEscaper replaces all five characters in a single pass,
// so the ampersands of the produced entities are never escaped again.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes & < > " and ' to their entities.
func EscapeHTML(s string) string { return htmlEscaper.Replace(s) }

// StreamReport writes the grade report of rec into qw.
func StreamReport(qw *quicktemplate.QWriter, rec Record, subject string) {
	qw.S(`<h1>`)
	qw.S(EscapeHTML(subject))
	qw.S(`</h1>`)

	qw.S(`<h3>Results</h3><table>`)
	qw.S(`<tr><th>Name</th><td>`)
	qw.S(EscapeHTML(rec.Name()))
	qw.S(`</td></tr><tr><th>Email</th><td>`)
	qw.S(EscapeHTML(rec.Email))
	qw.S(`</td></tr><tr><th>Grade</th><td>`)
	if f, ok := rec.GradeValue(); ok {
		qw.FPrec(f, 2)
	} else {
		qw.S(EscapeHTML(rec.Grade))
	}
	qw.S(`%</td></tr></table>`)

	qw.S(`<h3>Breakdown</h3><table` + tableStyle + `><thead><tr>`)
	for _, sg := range rec.SubGrades {
		qw.S(`<th` + cellStyle + `>`)
		qw.S(EscapeHTML(sg.Label))
		qw.S(`</th>`)
	}
	qw.S(`</tr></thead><tbody><tr>`)
	for _, sg := range rec.SubGrades {
		qw.S(`<td` + cellStyle + `>`)
		qw.S(EscapeHTML(sg.Value))
		qw.S(`</td>`)
	}
	qw.S(`</tr></tbody></table>`)

	qw.S(`<h3>Comments</h3><p>`)
	qw.S(EscapeHTML(rec.Comment))
	qw.S(`</p>`)
}

// WriteReport writes the grade report of rec into w.
func WriteReport(w io.Writer, rec Record, subject string) {
	qw := quicktemplate.AcquireWriter(w)
	StreamReport(qw.N(), rec, subject)
	quicktemplate.ReleaseWriter(qw)
}

// Report returns the grade report of rec as an HTML fragment.
func Report(rec Record, subject string) string {
	bb := quicktemplate.AcquireByteBuffer()
	WriteReport(bb, rec, subject)
	s := string(bb.B)
	quicktemplate.ReleaseByteBuffer(bb)
	return s
}
