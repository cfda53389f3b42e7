package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"

	"github.com/jmoiron/sqlx"
)

// SQLSource reads the catalog from the pois and venues tables written by
// repositories.SeedCatalog. It works with both the pgx and sqlite drivers.
type SQLSource struct {
	DB *sqlx.DB
}

func NewSQLSource(db *sqlx.DB) *SQLSource {
	return &SQLSource{DB: db}
}

func (s *SQLSource) Name() string { return "sql" }

type poiRow struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Categories    string          `db:"categories"`
	Tags          string          `db:"tags"`
	Description   string          `db:"description"`
	CostUSD       float64         `db:"cost_usd"`
	DurationHours float64         `db:"duration_hours"`
	BestTime      string          `db:"best_time"`
	Rating        float64         `db:"rating"`
	District      string          `db:"district"`
	Lat           sql.NullFloat64 `db:"lat"`
	Lng           sql.NullFloat64 `db:"lng"`
}

type venueRow struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Category    string          `db:"category"`
	AvgCheckUSD float64         `db:"avg_check_usd"`
	OpensAt     string          `db:"opens_at"`
	ClosesAt    string          `db:"closes_at"`
	Rating      float64         `db:"rating"`
	Lat         sql.NullFloat64 `db:"lat"`
	Lng         sql.NullFloat64 `db:"lng"`
}

// Load returns every stored POI and venue in seed order. Rows that cannot be
// converted are reported as issues; query failures are returned as errors.
func (s *SQLSource) Load(ctx context.Context) (_ ports.CatalogData, err error) {
	defer obs.Time(ctx, "catalog.sql.Load")(&err)

	if s.DB == nil {
		return ports.CatalogData{}, errors.New("sql catalog source: db is nil")
	}

	var pois []poiRow
	q := `
	SELECT id, name, categories, tags, description, cost_usd, duration_hours,
		best_time, rating, district, lat, lng
	FROM pois
	ORDER BY position, id;
	`
	if err := s.DB.SelectContext(ctx, &pois, q); err != nil {
		return ports.CatalogData{}, fmt.Errorf("load sql catalog: query pois: %w", err)
	}

	var venues []venueRow
	q = `
	SELECT id, name, category, avg_check_usd, opens_at, closes_at, rating, lat, lng
	FROM venues
	ORDER BY position, id;
	`
	if err := s.DB.SelectContext(ctx, &venues, q); err != nil {
		return ports.CatalogData{}, fmt.Errorf("load sql catalog: query venues: %w", err)
	}

	data := ports.CatalogData{
		POIs:   make([]domain.POI, 0, len(pois)),
		Venues: make([]domain.Venue, 0, len(venues)),
	}

	for _, r := range pois {
		p, err := r.toDomain()
		if err != nil {
			data.Issues = append(data.Issues, fmt.Sprintf("poi row %q skipped: %v", r.ID, err))
			continue
		}
		data.POIs = append(data.POIs, p)
	}

	for _, r := range venues {
		v, err := r.toDomain()
		if err != nil {
			data.Issues = append(data.Issues, fmt.Sprintf("venue row %q skipped: %v", r.ID, err))
			continue
		}
		data.Venues = append(data.Venues, v)
	}

	return data, nil
}

func (r poiRow) toDomain() (domain.POI, error) {
	var categories, tags []string
	if err := json.Unmarshal([]byte(r.Categories), &categories); err != nil {
		return domain.POI{}, fmt.Errorf("decode categories: %w", err)
	}
	if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil {
		return domain.POI{}, fmt.Errorf("decode tags: %w", err)
	}

	bt, _ := domain.ParseBestTime(r.BestTime)

	return domain.POI{
		ID:            r.ID,
		Name:          r.Name,
		Categories:    domain.NormalizeLabels(categories),
		Tags:          domain.NormalizeLabels(tags),
		Description:   r.Description,
		CostUSD:       r.CostUSD,
		DurationHours: r.DurationHours,
		BestTime:      bt,
		Rating:        r.Rating,
		District:      r.District,
		Location:      location(r.Lat, r.Lng),
	}, nil
}

func (r venueRow) toDomain() (domain.Venue, error) {
	opens, err := domain.ParseClock(r.OpensAt)
	if err != nil {
		return domain.Venue{}, err
	}
	closes, err := domain.ParseClock(r.ClosesAt)
	if err != nil {
		return domain.Venue{}, err
	}

	return domain.Venue{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		AvgCheckUSD: r.AvgCheckUSD,
		OpensAt:     opens,
		ClosesAt:    closes,
		Rating:      r.Rating,
		Location:    location(r.Lat, r.Lng),
	}, nil
}

func location(lat, lng sql.NullFloat64) *domain.Coordinates {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
}
