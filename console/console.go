// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

// Package console implements gradereport.UI on a line-oriented terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/UNO-SOFT/gradereport"
)

var _ = (gradereport.UI)((*UI)(nil))

// UI prompts on w and reads the answers from r.
type UI struct {
	r *bufio.Reader
	w io.Writer

	// Answers are consumed before reading r.
	Answers []string
}

// New returns a UI reading r and writing w. The answers are replayed first.
func New(r io.Reader, w io.Writer, answers ...string) *UI {
	return &UI{r: bufio.NewReader(r), w: w, Answers: answers}
}

// readLine returns ok=false at the end of input.
func (u *UI) readLine(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if len(u.Answers) != 0 {
		s := u.Answers[0]
		u.Answers = u.Answers[1:]
		fmt.Fprintln(u.w, s)
		return s, true, nil
	}
	line, err := u.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				fmt.Fprintln(u.w)
				return "", false, nil
			}
		} else {
			return "", false, err
		}
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// PromptText returns Cancelled for an empty line or the end of input.
func (u *UI) PromptText(ctx context.Context, title, message string) (gradereport.Response, error) {
	fmt.Fprintf(u.w, "%s\n%s (empty to cancel): ", title, message)
	s, ok, err := u.readLine(ctx)
	if err != nil {
		return gradereport.Response{}, err
	}
	if s = strings.TrimSpace(s); !ok || s == "" {
		return gradereport.Response{Kind: gradereport.Cancelled}, nil
	}
	return gradereport.Response{Kind: gradereport.Confirmed, Text: s}, nil
}

// PromptYesNo accepts y or yes, anything else is no.
func (u *UI) PromptYesNo(ctx context.Context, title, message string) (bool, error) {
	fmt.Fprintf(u.w, "%s\n%s [y/N]: ", title, message)
	s, _, err := u.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (u *UI) Alert(ctx context.Context, title, message string) error {
	_, err := fmt.Fprintf(u.w, "[%s] %s\n", title, message)
	return err
}

// RunMenu shows the menu returned by items until "q" or the end of input.
//
// The failures the actions already alerted are not repeated.
func (u *UI) RunMenu(ctx context.Context, title string, items func(context.Context) ([]gradereport.MenuItem, error)) error {
	for {
		menu, err := items(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(u.w, "\n%s\n", title)
		for i, it := range menu {
			fmt.Fprintf(u.w, "  %d) %s\n", i+1, it.Label)
		}
		fmt.Fprint(u.w, "  q) Quit\n> ")
		s, ok, err := u.readLine(ctx)
		if err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if !ok || s == "q" || s == "Q" {
			return nil
		}
		i, err := strconv.Atoi(s)
		if err != nil || i < 1 || i > len(menu) {
			fmt.Fprintf(u.w, "%q: no such item\n", s)
			continue
		}
		if err = menu[i-1].Action(ctx); err != nil && !alerted(err) {
			fmt.Fprintf(u.w, "ERROR: %v\n", err)
		}
	}
}

func alerted(err error) bool {
	var ae *gradereport.AlertedError
	return errors.As(err, &ae)
}
