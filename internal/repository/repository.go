package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/wayfinder/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository is a Postgres-backed cache mapping free-text addresses to
// coordinates, saving repeat round trips to the geocoding provider.
type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface is the cache contract the resolver depends on.
type Interface interface {
	Lookup(ctx context.Context, address string) (*models.Coordinate, error)
	Store(ctx context.Context, address string, coords models.Coordinate) error
}

// Database is the subset of pgxpool.Pool the repository uses.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
