// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import "context"

// MenuTitle is the title of the menu.
const MenuTitle = "Teaching"

// MenuItem is a labelled action.
type MenuItem struct {
	Label  string
	Action func(context.Context) error
}

// Menu returns the actions available in the current debug state.
// Debug address handling is offered only in debug mode.
func (c *Controller) Menu(ctx context.Context) ([]MenuItem, error) {
	items := []MenuItem{
		{Label: "Send grades to all student rows", Action: c.SendAll},
		{Label: "Send grade to individual student by row", Action: c.SendOne},
	}
	debug, err := c.Settings.Debug(ctx)
	if err != nil {
		return nil, err
	}
	if !debug {
		return append(items, MenuItem{Label: "Turn debug on",
			Action: func(ctx context.Context) error { return c.SetDebug(ctx, true) }}), nil
	}
	email, err := c.Settings.DebugEmail(ctx)
	if err != nil {
		return nil, err
	}
	return append(items,
		MenuItem{Label: "Turn debug off",
			Action: func(ctx context.Context) error { return c.SetDebug(ctx, false) }},
		MenuItem{Label: "Change debug email <" + email + ">", Action: c.ChangeDebugEmail},
		MenuItem{Label: "Reset debug defaults", Action: c.ResetDebug},
	), nil
}
