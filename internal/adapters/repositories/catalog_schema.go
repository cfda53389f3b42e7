package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InitSchema creates the catalog tables. The DDL is portable between
// Postgres and SQLite and safe to run repeatedly.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPOIsQuery := `
	CREATE TABLE IF NOT EXISTS pois (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		categories TEXT NOT NULL DEFAULT '[]',
		tags TEXT NOT NULL DEFAULT '[]',
		description TEXT NOT NULL DEFAULT '',
		cost_usd DOUBLE PRECISION NOT NULL DEFAULT 0,
		duration_hours DOUBLE PRECISION NOT NULL,
		best_time TEXT NOT NULL DEFAULT 'any',
		rating DOUBLE PRECISION NOT NULL,
		district TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION,
		lng DOUBLE PRECISION
	);
	`

	createVenuesQuery := `
	CREATE TABLE IF NOT EXISTS venues (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		avg_check_usd DOUBLE PRECISION NOT NULL,
		opens_at TEXT NOT NULL,
		closes_at TEXT NOT NULL,
		rating DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION,
		lng DOUBLE PRECISION
	);
	`

	createPOIPositionIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_pois_position ON pois(position);
	`

	createVenuePositionIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_venues_position ON venues(position);
	`

	statements := []string{
		createPOIsQuery,
		createVenuesQuery,
		createPOIPositionIndexQuery,
		createVenuePositionIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
