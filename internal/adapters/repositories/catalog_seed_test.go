package repositories

import (
	"context"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/db"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSeededDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.DriverSQLite, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(ctx, conn))
	// Running it twice must be harmless.
	require.NoError(t, InitSchema(ctx, conn))
	return conn
}

func TestSeedCatalogReplacesContents(t *testing.T) {
	ctx := context.Background()
	conn := openSeededDB(t)

	first := []domain.POI{{ID: "a", Name: "A", DurationHours: 1, BestTime: domain.BestTimeAny, Rating: 4}}
	require.NoError(t, SeedCatalog(ctx, conn, first, nil))

	second := []domain.POI{
		{ID: "c", Name: "C", DurationHours: 1, BestTime: domain.BestTimeAny, Rating: 4, Categories: []string{"art"}},
		{ID: "b", Name: "B", DurationHours: 2, BestTime: domain.BestTimeMorning, Rating: 5},
	}
	venues := []domain.Venue{
		{ID: "v", Name: "V", AvgCheckUSD: 7, OpensAt: domain.At(8, 30), ClosesAt: domain.EndOfDay, Rating: 4.2,
			Location: &domain.Coordinates{Lat: 1.5, Lng: 2.5}},
	}
	require.NoError(t, SeedCatalog(ctx, conn, second, venues))

	var rows []struct {
		ID         string `db:"id"`
		Position   int    `db:"position"`
		Categories string `db:"categories"`
		Tags       string `db:"tags"`
	}
	require.NoError(t, conn.SelectContext(ctx, &rows, `SELECT id, position, categories, tags FROM pois ORDER BY position`))
	require.Len(t, rows, 2)
	assert.Equal(t, "c", rows[0].ID)
	assert.Equal(t, `["art"]`, rows[0].Categories)
	assert.Equal(t, `[]`, rows[0].Tags)
	assert.Equal(t, "b", rows[1].ID)
	assert.Equal(t, 1, rows[1].Position)

	var venue struct {
		OpensAt  string  `db:"opens_at"`
		ClosesAt string  `db:"closes_at"`
		Lat      float64 `db:"lat"`
	}
	require.NoError(t, conn.GetContext(ctx, &venue, `SELECT opens_at, closes_at, lat FROM venues WHERE id = 'v'`))
	assert.Equal(t, "08:30", venue.OpensAt)
	assert.Equal(t, "24:00", venue.ClosesAt)
	assert.InDelta(t, 1.5, venue.Lat, 1e-9)
}

func TestSeedCatalogRollsBackOnBadInput(t *testing.T) {
	ctx := context.Background()
	conn := openSeededDB(t)

	require.NoError(t, SeedCatalog(ctx, conn, []domain.POI{{ID: "keep", Name: "Keep", DurationHours: 1, Rating: 4}}, nil))

	err := SeedCatalog(ctx, conn, []domain.POI{{ID: "x"}, {ID: "x"}}, nil)
	require.Error(t, err)

	var count int
	require.NoError(t, conn.GetContext(ctx, &count, `SELECT COUNT(*) FROM pois`))
	assert.Equal(t, 1, count)

	err = SeedCatalog(ctx, conn, []domain.POI{{ID: " "}}, nil)
	assert.ErrorContains(t, err, "id cannot be empty")
}

func TestSeedCatalogNilDB(t *testing.T) {
	assert.Error(t, SeedCatalog(context.Background(), nil, nil, nil))
	assert.Error(t, InitSchema(context.Background(), nil))
}
