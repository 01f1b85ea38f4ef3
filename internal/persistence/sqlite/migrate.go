package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// migration is one versioned schema step. Statements run inside a single
// transaction together with the version bookkeeping.
type migration struct {
	version    int
	name       string
	statements []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create core tables",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS work_day (
				date TEXT PRIMARY KEY,
				start_time TEXT,
				end_time TEXT,
				break_minutes INTEGER NOT NULL DEFAULT 0 CHECK (break_minutes >= 0),
				break_start TEXT,
				net_minutes INTEGER,
				notes TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS recurring_holiday (
				id TEXT PRIMARY KEY,
				month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
				day INTEGER NOT NULL CHECK (day BETWEEN 1 AND 31),
				label TEXT,
				UNIQUE (month, day)
			)`,
			`CREATE TABLE IF NOT EXISTS time_off (
				id TEXT PRIMARY KEY,
				start_date TEXT NOT NULL,
				end_date TEXT NOT NULL,
				kind TEXT NOT NULL,
				label TEXT,
				CHECK (end_date >= start_date)
			)`,
		},
	},
	{
		version: 2,
		name:    "index time_off range lookups",
		statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_time_off_start ON time_off (start_date)`,
		},
	},
}

// Migrate applies pending schema migrations, tracking progress in the
// schema_migrations table. Running it repeatedly is a no-op.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to initialize schema_migrations: %w", err)
	}

	var current sql.NullInt64
	if err := s.pool.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if current.Valid && m.version <= int(current.Int64) {
			continue
		}
		err := s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			for _, stmt := range m.statements {
				if _, err := tx.Exec(stmt); err != nil {
					return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
				}
			}
			_, err := tx.Exec(`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
				m.version, m.name, time.Now().UTC().Format(time.RFC3339))
			return err
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// SeedSettings inserts default settings values for keys that are missing,
// leaving existing values untouched.
func (s *Store) SeedSettings(ctx context.Context, defaults map[string]string) error {
	return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for key, value := range defaults {
			if _, err := tx.Exec(
				`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT (key) DO NOTHING`,
				key, value,
			); err != nil {
				return fmt.Errorf("failed to seed setting %s: %w", key, err)
			}
		}
		return nil
	})
}
