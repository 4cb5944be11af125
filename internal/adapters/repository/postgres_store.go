package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var ErrBlobTableMissing = errors.New("blob table does not exist")

var _ domain.BlobStore = (*PostgresBlobStore)(nil)

// PostgresBlobStore keeps one row per key in a two-column table.
type PostgresBlobStore struct {
	db    *sqlx.DB
	table string
}

func NewPostgresBlobStore(db *sqlx.DB, table string) *PostgresBlobStore {
	return &PostgresBlobStore{db: db, table: pq.QuoteIdentifier(table)}
}

// EnsureTable creates the blob table if it is missing.
func (r *PostgresBlobStore) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            key        TEXT PRIMARY KEY,
            value      TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`, r.table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create blob table: %w", err)
	}
	return nil
}

func (r *PostgresBlobStore) Get(ctx context.Context, key string) (string, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, r.table)

	var value string
	err := r.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrBlobNotFound
	}
	if err != nil {
		return "", r.classify("get", key, err)
	}
	return value, nil
}

func (r *PostgresBlobStore) Set(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`, r.table)

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return r.classify("set", key, err)
	}
	return nil
}

func (r *PostgresBlobStore) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresBlobStore) classify(op, key string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
		return fmt.Errorf("postgres %s %s: %w", op, key, ErrBlobTableMissing)
	}
	return fmt.Errorf("postgres %s %s: %w", op, key, err)
}
