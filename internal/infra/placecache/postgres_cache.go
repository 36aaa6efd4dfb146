package placecache

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/dashboard"
)

// PostgresCache implements dashboard.PlaceCache on a pgx pool.
//
// Expected schema:
//
//	CREATE TABLE place_cache (
//	    query        text PRIMARY KEY,
//	    display_name text NOT NULL,
//	    country_code text NOT NULL,
//	    latitude     double precision NOT NULL,
//	    longitude    double precision NOT NULL,
//	    resolved_at  timestamptz NOT NULL DEFAULT now()
//	);
type PostgresCache struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewPostgresCache constructs the cache. A zero ttl means entries never
// expire.
func NewPostgresCache(pool *pgxpool.Pool, ttl time.Duration) *PostgresCache {
	return &PostgresCache{pool: pool, ttl: ttl}
}

// Lookup fetches a fresh enough resolution for the normalized query.
func (c *PostgresCache) Lookup(ctx context.Context, query string) (*dashboard.Place, bool, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT display_name, country_code, latitude, longitude, resolved_at
		FROM place_cache
		WHERE query = $1
		LIMIT 1
	`, query)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, false, rows.Err()
	}

	var (
		place      dashboard.Place
		resolvedAt time.Time
	)
	if err := rows.Scan(&place.DisplayName, &place.CountryCode, &place.Coords.Latitude, &place.Coords.Longitude, &resolvedAt); err != nil {
		return nil, false, err
	}
	if c.ttl > 0 && time.Since(resolvedAt) > c.ttl {
		return nil, false, rows.Err()
	}
	return &place, true, rows.Err()
}

// Store upserts the resolution for the normalized query.
func (c *PostgresCache) Store(ctx context.Context, query string, place dashboard.Place) error {
	_, err := c.pool.Exec(ctx, `
		INSERT INTO place_cache (query, display_name, country_code, latitude, longitude, resolved_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (query) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    country_code = EXCLUDED.country_code,
		    latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude,
		    resolved_at = now()
	`, query, place.DisplayName, place.CountryCode, place.Coords.Latitude, place.Coords.Longitude)
	return err
}

var _ dashboard.PlaceCache = (*PostgresCache)(nil)
