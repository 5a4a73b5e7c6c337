package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shorturl/internal/shortener"
)

// The hash index is deliberately not unique: concurrent first-time shortens
// may insert duplicates and lookups pick the oldest row.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS short_urls (
    id     BIGSERIAL PRIMARY KEY,
    hash   TEXT NOT NULL,
    target TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS short_urls_hash_idx ON short_urls (hash);
`

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed durable store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the short_urls table and its index if they are missing.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaSQL)

	return err
}

func (p *PostgresStore) FindByHash(ctx context.Context, hash shortener.Hash) (*shortener.ShortURL, error) {
	query := `
		SELECT id, hash, target
		FROM short_urls
		WHERE hash = $1
		ORDER BY id
		LIMIT 1
	`

	var rec shortener.ShortURL

	err := p.pool.QueryRow(ctx, query, string(hash)).Scan(
		&rec.ID,
		&rec.Hash,
		&rec.Target,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &rec, nil
}

func (p *PostgresStore) ExistsByHash(ctx context.Context, hash shortener.Hash) (bool, error) {
	var exists bool

	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM short_urls WHERE hash = $1)`,
		string(hash),
	).Scan(&exists)

	return exists, err
}

func (p *PostgresStore) Insert(ctx context.Context, hash shortener.Hash, target string) (*shortener.ShortURL, error) {
	query := `
		INSERT INTO short_urls (hash, target)
		VALUES ($1, $2)
		RETURNING id
	`

	rec := &shortener.ShortURL{Hash: hash, Target: target}

	if err := p.pool.QueryRow(ctx, query, string(hash), target).Scan(&rec.ID); err != nil {
		return nil, err
	}

	return rec, nil
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
