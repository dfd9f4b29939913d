// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// State of the Controller.
type State uint8

const (
	Idle State = iota
	ConfirmingTarget
	Extracting
	Rendering
	Sending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ConfirmingTarget:
		return "confirming"
	case Extracting:
		return "extracting"
	case Rendering:
		return "rendering"
	case Sending:
		return "sending"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Config is the per-course configuration of the Controller.
type Config struct {
	// AppName is the title of the dialogs.
	AppName string
	Course  string
	// ReplyTo is the professor's address.
	ReplyTo string
	Columns ColumnMap
	// HeaderColumn is scanned for the first non-empty row: the header.
	HeaderColumn string
	// SubGradeFrom is the first sub-grade column, the last one is the
	// last used column of the sheet.
	SubGradeFrom string
	// StatsRows is the number of aggregate rows (mean, mode, min, max)
	// at the bottom of the sheet.
	StatsRows int
}

// DefaultConfig is the layout of the gradebook template.
var DefaultConfig = Config{
	AppName:      "Grade reporter",
	Columns:      DefaultColumns,
	HeaderColumn: "A",
	SubGradeFrom: "H",
	StatsRows:    4,
}

// Layout is where the data is on the sheet.
type Layout struct {
	Header    int
	Students  RowRange
	SubGrades SubGradeColumns
}

// Controller sends the grade reports of a sheet.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	Config
	Sheet    Sheet
	UI       UI
	Mailer   Mailer
	Settings Settings
	// Attacher is optional.
	Attacher Attacher
	Logger   *slog.Logger

	state State
}

// State returns the current state, Idle between operations.
func (c *Controller) State() State { return c.state }

func (c *Controller) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Controller) setState(s State) {
	c.logger().Debug("state", "from", c.state, "to", s)
	c.state = s
}

// Subject is "<course> - <sheet name>".
func (c *Controller) Subject() string { return c.Course + " - " + c.Sheet.Name() }

// Layout locates the header row, the student rows and the sub-grade columns.
func (c *Controller) Layout(ctx context.Context) (Layout, error) {
	var lay Layout
	if err := ctx.Err(); err != nil {
		return lay, err
	}
	lastRow, err := c.Sheet.LastRow()
	if err != nil {
		return lay, err
	}
	if lastRow < 2 {
		return lay, fmt.Errorf("%s[%s]: %w", c.Sheet.Name(), c.HeaderColumn, ErrMissingHeaderRow)
	}
	rows, err := c.Sheet.Range(Cell(c.HeaderColumn, 1), Cell(c.HeaderColumn, lastRow))
	if err != nil {
		return lay, err
	}
	values := make([]string, len(rows))
	for i, r := range rows {
		values[i] = r[0]
	}
	if lay.Header, err = FirstNonEmptyRow(values); err != nil {
		return lay, fmt.Errorf("%s[%s]: %w", c.Sheet.Name(), c.HeaderColumn, err)
	}
	lastCol, err := c.Sheet.LastColumn()
	if err != nil {
		return lay, err
	}
	lay.Students = StudentRows(lay.Header, lastRow, c.StatsRows)
	lay.SubGrades = SubGradeColumns{From: c.SubGradeFrom, To: ColumnToLetter(lastCol)}
	c.logger().Debug("layout", "sheet", c.Sheet.Name(), "header", lay.Header,
		"students", lay.Students, "subGrades", lay.SubGrades)
	return lay, nil
}

// SendOne asks for a student row and emails that student.
func (c *Controller) SendOne(ctx context.Context) error {
	c.setState(ConfirmingTarget)
	defer c.setState(Idle)
	lay, err := c.Layout(ctx)
	if err != nil {
		return c.fail(ctx, layoutMessage(err), err)
	}
	resp, err := c.UI.PromptText(ctx, c.AppName, "Enter student row number")
	if err != nil {
		return err
	}
	switch resp.Kind {
	case Cancelled:
		return c.fail(ctx, "Emailing student was cancelled.", ErrCancelled)
	case Invalid:
		return c.fail(ctx, "Invalid input for student row.",
			fmt.Errorf("%s: %w", resp.Reason, ErrInvalidStudentRow))
	}
	row, err := strconv.Atoi(strings.TrimSpace(resp.Text))
	if err != nil || !lay.Students.Contains(row) {
		return c.fail(ctx, "Invalid input for student row.",
			fmt.Errorf("%q not in %s: %w", resp.Text, lay.Students, ErrInvalidStudentRow))
	}

	lName, err := c.Sheet.Cell(Cell(c.Columns.LastName, row))
	if err != nil {
		return err
	}
	fName, err := c.Sheet.Cell(Cell(c.Columns.FirstName, row))
	if err != nil {
		return err
	}
	if err = c.UI.Alert(ctx, c.AppName, "Emailing student "+lName+", "+fName+"."); err != nil {
		return err
	}
	if err = c.send(ctx, lay, row); err != nil {
		return c.fail(ctx, "Sending the email failed: "+err.Error(), err)
	}
	return nil
}

// SendAll asks for confirmation and emails every student, in row order.
//
// A failed row does not stop the others: the failures are logged,
// counted in the closing alert and returned joined.
func (c *Controller) SendAll(ctx context.Context) error {
	c.setState(ConfirmingTarget)
	defer c.setState(Idle)
	lay, err := c.Layout(ctx)
	if err != nil {
		return c.fail(ctx, layoutMessage(err), err)
	}
	ok, err := c.UI.PromptYesNo(ctx, c.AppName, "Are you sure you want to email all students?")
	if err != nil {
		return err
	}
	if !ok {
		return c.fail(ctx, "Emailing all students was cancelled.", ErrCancelled)
	}
	if err = c.UI.Alert(ctx, c.AppName, "All students will be emailed."); err != nil {
		return err
	}

	logger := c.logger()
	var errs []error
	for row := lay.Students.From; row <= lay.Students.To; row++ {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := c.send(ctx, lay, row); err != nil {
			logger.Error("send", "row", row, "error", err)
			errs = append(errs, fmt.Errorf("row %d: %w", row, err))
		}
	}
	if len(errs) == 0 {
		logger.Info("all sent", "count", lay.Students.Len())
		return nil
	}
	err = errors.Join(errs...)
	return c.fail(ctx,
		fmt.Sprintf("%d of %d emails could not be sent.", len(errs), lay.Students.Len()), err)
}

func (c *Controller) send(ctx context.Context, lay Layout, row int) error {
	c.setState(Extracting)
	rec, err := Extract(c.Sheet, row, c.Columns, lay.SubGrades, lay.Header)
	if err != nil {
		return err
	}

	c.setState(Rendering)
	subject := c.Subject()
	msg := Message{Subject: subject, HTML: Report(rec, subject), ReplyTo: c.ReplyTo}
	if c.Attacher != nil {
		a, err := c.Attacher.Attachment(rec, subject)
		if err != nil {
			return fmt.Errorf("attachment: %w", err)
		}
		msg.Attachments = append(msg.Attachments, a)
	}
	if msg.To, err = c.recipient(ctx, rec); err != nil {
		return err
	}

	c.setState(Sending)
	c.logger().Info("send", "row", row, "student", rec.Name(), "email", rec.Email, "to", msg.To)
	return c.Mailer.Send(ctx, msg)
}

// recipient is the debug address in debug mode, the student's own otherwise.
func (c *Controller) recipient(ctx context.Context, rec Record) (string, error) {
	debug, err := c.Settings.Debug(ctx)
	if err != nil {
		return "", err
	}
	if !debug {
		return rec.Email, nil
	}
	to, err := c.Settings.DebugEmail(ctx)
	if err != nil {
		return "", err
	}
	if to == "" {
		return "", errors.New("debug mode is on, but there is no debug email")
	}
	return to, nil
}

// ChangeDebugEmail asks for a new debug address and stores it.
func (c *Controller) ChangeDebugEmail(ctx context.Context) error {
	resp, err := c.UI.PromptText(ctx, c.AppName, "Enter new debug email.")
	if err != nil {
		return err
	}
	switch resp.Kind {
	case Cancelled:
		return c.fail(ctx, "Debug email change was cancelled.", ErrCancelled)
	case Invalid:
		return c.fail(ctx, "Invalid email.", fmt.Errorf("%s: %w", resp.Reason, ErrInvalidEmail))
	}
	if err = c.Settings.SetDebugEmail(ctx, strings.TrimSpace(resp.Text)); err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			return c.fail(ctx, "Invalid email.", err)
		}
		return err
	}
	return c.UI.Alert(ctx, c.AppName, "Debug email was changed.")
}

// SetDebug turns debug mode on or off.
func (c *Controller) SetDebug(ctx context.Context, enabled bool) error {
	c.logger().Info("debug", "enabled", enabled)
	return c.Settings.ToggleDebug(ctx, enabled)
}

// ResetDebug restores the default debug settings.
func (c *Controller) ResetDebug(ctx context.Context) error {
	c.logger().Info("reset debug defaults")
	return c.Settings.Reset(ctx)
}

// fail alerts the user with msg and returns err as an *AlertedError.
func (c *Controller) fail(ctx context.Context, msg string, err error) error {
	c.logger().Debug("fail", "message", msg, "error", err)
	if aErr := c.UI.Alert(ctx, c.AppName, msg); aErr != nil {
		return errors.Join(err, aErr)
	}
	return &AlertedError{Message: msg, Err: err}
}

func layoutMessage(err error) string {
	if errors.Is(err, ErrMissingHeaderRow) {
		return "No header row found."
	}
	return "Reading the sheet failed: " + err.Error()
}
