package postgres

import (
	"context"
	"errors"
	"fmt"

	"campus-prep/internal/database"
	"campus-prep/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const (
	queryCreateTable = `CREATE TABLE IF NOT EXISTS kv_records (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	queryColumns = `SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`
	queryGet     = `SELECT value FROM kv_records WHERE key = $1`
	queryUpsert  = `INSERT INTO kv_records (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	queryDelete = `DELETE FROM kv_records WHERE key = $1`
	queryKeys   = `SELECT key FROM kv_records WHERE left(key, char_length($1)) = $1 ORDER BY key`
)

type Store struct {
	db database.DB
}

func New(db database.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates kv_records when missing and verifies its columns.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil db")
	}
	if _, err := s.db.Exec(ctx, queryCreateTable); err != nil {
		return fmt.Errorf("create kv_records: %w", err)
	}
	return ensureTableColumns(ctx, s.db, "kv_records", "key", "value", "created_at", "updated_at")
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	if err := s.db.QueryRow(ctx, queryGet, key).Scan(&v); err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("postgres get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value string) error {
	if _, err := s.db.Exec(ctx, queryUpsert, key, value); err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, queryDelete, key); err != nil {
		return fmt.Errorf("postgres delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.Query(ctx, queryKeys, prefix)
	if err != nil {
		return nil, fmt.Errorf("postgres keys %s: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func ensureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	rows, err := db.Query(ctx, queryColumns, table)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}
