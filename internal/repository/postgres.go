package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/wayfinder/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDatabase opens a pgx connection pool for the given DSN and verifies it
// with a ping.
func NewDatabase(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Schema creates the cache table when it does not exist yet.
func Schema(ctx context.Context, db Database) error {
	query := `
		CREATE TABLE IF NOT EXISTS geocode_cache (
			address   TEXT PRIMARY KEY,
			latitude  DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL
		);
	`

	if _, err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create geocode_cache table: %w", err)
	}
	return nil
}

// Lookup fetches the cached coordinate for an address. A cache miss returns
// (nil, nil) so callers can fall through to the provider without error
// handling gymnastics.
func (r *Repository) Lookup(ctx context.Context, address string) (*models.Coordinate, error) {
	query := `
		SELECT latitude, longitude
		FROM geocode_cache
		WHERE address = $1;
	`

	var coords models.Coordinate
	err := r.db.QueryRow(ctx, query, address).Scan(&coords.Latitude, &coords.Longitude)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query geocode cache: %w", err)
	}

	r.log.DebugContext(ctx, "Geocode cache hit", "address", address)
	return &coords, nil
}

// Store upserts the coordinate for an address.
func (r *Repository) Store(ctx context.Context, address string, coords models.Coordinate) error {
	query := `
		INSERT INTO geocode_cache (address, latitude, longitude)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO UPDATE
		SET latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude;
	`

	_, err := r.db.Exec(ctx, query, address, coords.Latitude, coords.Longitude)
	if err != nil {
		return fmt.Errorf("failed to store geocode cache entry: %w", err)
	}

	return nil
}
