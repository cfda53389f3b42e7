package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"strings"

	"github.com/jmoiron/sqlx"
)

// SeedCatalog replaces the stored catalog with pois and venues in one
// transaction. Slice order is kept in the position column.
func SeedCatalog(ctx context.Context, db *sqlx.DB, pois []domain.POI, venues []domain.Venue) (err error) {
	defer obs.Time(ctx, "repositories.SeedCatalog")(&err)

	if db == nil {
		return errors.New("seed catalog: DB is nil")
	}

	for i, p := range pois {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("seed catalog: poi at index %d: id cannot be empty", i)
		}
	}
	for i, v := range venues {
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("seed catalog: venue at index %d: id cannot be empty", i)
		}
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"pois", "venues"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("seed catalog: clear %s: %w", table, err)
		}
	}

	if err := insertPOIs(ctx, tx, pois); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if err := insertVenues(ctx, tx, venues); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}

func insertPOIs(ctx context.Context, tx *sqlx.Tx, pois []domain.POI) error {
	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
	INSERT INTO pois (
		id, position, name, categories, tags, description, cost_usd,
		duration_hours, best_time, rating, district, lat, lng
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("prepare poi insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range pois {
		categories, err := encodeList(p.Categories)
		if err != nil {
			return fmt.Errorf("encode categories poi=%q: %w", p.ID, err)
		}
		tags, err := encodeList(p.Tags)
		if err != nil {
			return fmt.Errorf("encode tags poi=%q: %w", p.ID, err)
		}
		lat, lng := nullCoordinates(p.Location)

		if _, err := stmt.ExecContext(ctx,
			p.ID, i, p.Name, categories, tags, p.Description, p.CostUSD,
			p.DurationHours, string(p.BestTime), p.Rating, p.District, lat, lng,
		); err != nil {
			return fmt.Errorf("insert poi=%q: %w", p.ID, err)
		}
	}

	return nil
}

func insertVenues(ctx context.Context, tx *sqlx.Tx, venues []domain.Venue) error {
	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
	INSERT INTO venues (
		id, position, name, category, avg_check_usd, opens_at, closes_at, rating, lat, lng
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("prepare venue insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range venues {
		lat, lng := nullCoordinates(v.Location)

		if _, err := stmt.ExecContext(ctx,
			v.ID, i, v.Name, v.Category, v.AvgCheckUSD,
			v.OpensAt.String(), v.ClosesAt.String(), v.Rating, lat, lng,
		); err != nil {
			return fmt.Errorf("insert venue=%q: %w", v.ID, err)
		}
	}

	return nil
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	return string(b), err
}

func nullCoordinates(c *domain.Coordinates) (lat, lng sql.NullFloat64) {
	if c == nil {
		return lat, lng
	}
	return sql.NullFloat64{Float64: c.Lat, Valid: true}, sql.NullFloat64{Float64: c.Lng, Valid: true}
}
