package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGateway persists records in a kv table.
type PostgresGateway struct {
	pool *pgxpool.Pool
}

// NewPostgresGateway connects to PostgreSQL and migrates the kv table.
func NewPostgresGateway(ctx context.Context, databaseURL string) (*PostgresGateway, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &PostgresGateway{pool: pool}, nil
}

// Get retrieves a value by key.
func (g *PostgresGateway) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := g.pool.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a value under key.
func (g *PostgresGateway) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`
	_, err := g.pool.Exec(ctx, query, key, value)
	return err
}

// Remove deletes a key. Removing a missing key is not an error.
func (g *PostgresGateway) Remove(ctx context.Context, key string) error {
	_, err := g.pool.Exec(ctx, `DELETE FROM kv WHERE key = $1`, key)
	return err
}

// Close releases the pool.
func (g *PostgresGateway) Close() error {
	g.pool.Close()
	return nil
}

var _ Gateway = (*PostgresGateway)(nil)
