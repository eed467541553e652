// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain repository ports.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS weights (day TEXT PRIMARY KEY, kg DOUBLE PRECISION NOT NULL CHECK(kg > 0), created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS intake_events (id BIGSERIAL PRIMARY KEY, day TEXT NOT NULL, calories DOUBLE PRECISION NOT NULL CHECK(calories >= 0), protein_g DOUBLE PRECISION NOT NULL DEFAULT 0, fat_g DOUBLE PRECISION NOT NULL DEFAULT 0, carbs_g DOUBLE PRECISION NOT NULL DEFAULT 0, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_intake_events_day ON intake_events(day);",
		"CREATE TABLE IF NOT EXISTS targets (id BIGSERIAL PRIMARY KEY, as_of TEXT NOT NULL, calories DOUBLE PRECISION NOT NULL, protein_g DOUBLE PRECISION NOT NULL, fat_g DOUBLE PRECISION NOT NULL, carbs_g DOUBLE PRECISION NOT NULL, tdee DOUBLE PRECISION NOT NULL, expected_rate_per_day DOUBLE PRECISION NOT NULL, goal TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_targets_as_of ON targets(as_of);",
		"CREATE TABLE IF NOT EXISTS goal_config (id SMALLINT PRIMARY KEY DEFAULT 1 CHECK(id = 1), goal TEXT NOT NULL, weekly_rate_kg DOUBLE PRECISION NOT NULL);",
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
	}
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
