package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/blake2b"
)

// DB wraps a pgx connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Maps returns a map repository on this pool.
func (d *DB) Maps() *MapRepository {
	return NewMapRepository(d.pool)
}

// Tilesets returns a tileset repository on this pool.
func (d *DB) Tilesets() *TilesetRepository {
	return NewTilesetRepository(d.pool)
}

// Checksum returns the BLAKE2b-256 digest of a stored snapshot.
func Checksum(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}
