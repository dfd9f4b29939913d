// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// Keys of the per-user settings.
const (
	DebugKey      = "g_debug"
	DebugEmailKey = "g_debugEmail"
)

// Store is a per-user persistent key/value store.
type Store interface {
	// Get returns ok=false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Identity tells who runs the program.
type Identity interface {
	CurrentUserEmail(context.Context) (string, error)
}

// StaticIdentity is an Identity with a fixed address.
type StaticIdentity string

func (id StaticIdentity) CurrentUserEmail(context.Context) (string, error) { return string(id), nil }

var emailRx = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// ValidEmail reports whether s looks like local-part@domain.tld
// (or local-part@[1.2.3.4]).
func ValidEmail(s string) bool { return emailRx.MatchString(s) }

// Settings holds the debug switch and the debug address of the current user.
type Settings struct {
	Store    Store
	Identity Identity
}

// EnsureDefaults sets the missing keys: the debug address to the current
// user's address, debug mode to off.
func (s Settings) EnsureDefaults(ctx context.Context) error {
	if _, ok, err := s.Store.Get(ctx, DebugEmailKey); err != nil {
		return err
	} else if !ok {
		me, err := s.Identity.CurrentUserEmail(ctx)
		if err != nil {
			return fmt.Errorf("current user: %w", err)
		}
		if err = s.Store.Set(ctx, DebugEmailKey, me); err != nil {
			return err
		}
	}
	if _, ok, err := s.Store.Get(ctx, DebugKey); err != nil {
		return err
	} else if !ok {
		return s.Store.Set(ctx, DebugKey, "false")
	}
	return nil
}

// Reset deletes both settings and restores the defaults.
func (s Settings) Reset(ctx context.Context) error {
	for _, k := range []string{DebugEmailKey, DebugKey} {
		if err := s.Store.Delete(ctx, k); err != nil {
			return err
		}
	}
	return s.EnsureDefaults(ctx)
}

// SetDebugEmail stores email as the debug address,
// returning ErrInvalidEmail (and keeping the old one) if it is malformed.
func (s Settings) SetDebugEmail(ctx context.Context, email string) error {
	if !ValidEmail(email) {
		return fmt.Errorf("%q: %w", email, ErrInvalidEmail)
	}
	return s.Store.Set(ctx, DebugEmailKey, email)
}

// ToggleDebug switches debug mode.
func (s Settings) ToggleDebug(ctx context.Context, enabled bool) error {
	return s.Store.Set(ctx, DebugKey, strconv.FormatBool(enabled))
}

// Debug reports whether debug mode is on. An absent or unparsable flag is off.
func (s Settings) Debug(ctx context.Context) (bool, error) {
	v, ok, err := s.Store.Get(ctx, DebugKey)
	if err != nil || !ok {
		return false, err
	}
	b, _ := strconv.ParseBool(v)
	return b, nil
}

// DebugEmail returns the debug address, "" if unset.
func (s Settings) DebugEmail(ctx context.Context) (string, error) {
	v, _, err := s.Store.Get(ctx, DebugEmailKey)
	return v, err
}

// MapStore is a Store in memory, for a single user.
type MapStore map[string]string

func (m MapStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}
func (m MapStore) Set(_ context.Context, key, value string) error { m[key] = value; return nil }
func (m MapStore) Delete(_ context.Context, key string) error     { delete(m, key); return nil }
