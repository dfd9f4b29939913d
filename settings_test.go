// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import (
	"context"
	"errors"
	"testing"
)

func TestValidEmail(t *testing.T) {
	for _, s := range []string{
		"a.b@example.com", "jane@x.edu", "first.last+tag@sub.example.co.uk",
		"x@[192.168.0.1]", `"quoted name"@example.org`,
	} {
		if !ValidEmail(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []string{
		"a@b", "not-an-email", "", "@example.com", "a@.com", "a b@example.com",
		"a..b@example.com", "a@example.c", "<a@example.com>",
	} {
		if ValidEmail(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	m := MapStore{}
	s := Settings{Store: m, Identity: StaticIdentity("prof@uni.edu")}

	if err := s.EnsureDefaults(ctx); err != nil {
		t.Fatal(err)
	}
	if m[DebugEmailKey] != "prof@uni.edu" || m[DebugKey] != "false" {
		t.Fatalf("defaults: %v", m)
	}

	if err := s.ToggleDebug(ctx, true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDebugEmail(ctx, "d@x.edu"); err != nil {
		t.Fatal(err)
	}
	if err := s.EnsureDefaults(ctx); err != nil {
		t.Fatal(err)
	}
	if debug, _ := s.Debug(ctx); !debug {
		t.Error("EnsureDefaults overwrote the debug flag")
	}
	if email, _ := s.DebugEmail(ctx); email != "d@x.edu" {
		t.Errorf("EnsureDefaults overwrote the debug email: %q", email)
	}

	if err := s.SetDebugEmail(ctx, "a@b"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("got %v, wanted ErrInvalidEmail", err)
	}
	if email, _ := s.DebugEmail(ctx); email != "d@x.edu" {
		t.Errorf("invalid email replaced the old one: %q", email)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if debug, _ := s.Debug(ctx); debug {
		t.Error("Reset left debug on")
	}
	if email, _ := s.DebugEmail(ctx); email != "prof@uni.edu" {
		t.Errorf("Reset: debug email is %q", email)
	}
}

func TestSettingsDebugUnset(t *testing.T) {
	ctx := context.Background()
	s := Settings{Store: MapStore{DebugKey: "garbage"}}
	if debug, err := s.Debug(ctx); err != nil || debug {
		t.Errorf("got %t, %v", debug, err)
	}
	if email, err := (Settings{Store: MapStore{}}).DebugEmail(ctx); err != nil || email != "" {
		t.Errorf("got %q, %v", email, err)
	}
}
