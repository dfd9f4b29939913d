// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

// Package settings persists the per-user settings in an SQLite file.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/UNO-SOFT/gradereport"
	_ "modernc.org/sqlite"
)

var _ = (gradereport.Store)((*Store)(nil))

// Store is the settings of one user in a database shared by users.
type Store struct {
	db   *sql.DB
	user string
}

// Open (or create) the database at path, scoped to user.
func Open(ctx context.Context, path, user string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	if _, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS user_settings (
		user  TEXT NOT NULL,
		name  TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (user, name)
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("%q: create schema: %w", path, err)
	}
	return &Store{db: db, user: user}, nil
}

// DefaultPath is settings.db in the user's config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "gradereport", "settings.db")
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM user_settings WHERE user = ? AND name = ?`, s.user, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO user_settings (user, name, value) VALUES (?, ?, ?)
		 ON CONFLICT (user, name) DO UPDATE SET value = excluded.value`,
		s.user, key, value,
	); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM user_settings WHERE user = ? AND name = ?`, s.user, key,
	); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
