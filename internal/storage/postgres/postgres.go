// Package postgres provides the shared remote record on Postgres.
//
// The record lives in one JSONB row. Every write upserts the row and
// publishes the key on a notification channel in the same transaction;
// watchers LISTEN on that channel and re-read the row when their key is
// announced.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/seatsync/internal/models"
	"github.com/mmynk/seatsync/internal/storage"
)

// Ensure Store implements storage.Remote
var _ storage.Remote = (*Store)(nil)

// Channel is the notification channel that carries changed keys.
const Channel = "seating_documents_changed"

const schema = `
CREATE TABLE IF NOT EXISTS seating_documents (
    key TEXT PRIMARY KEY,
    body JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store implements storage.Remote using a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to dsn, verifies the connection and ensures the schema exists.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes every pooled connection.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Save upserts the document and announces key to watchers.
func (s *Store) Save(ctx context.Context, key string, snapshot models.Snapshot) error {
	body, err := storage.Encode(snapshot)
	if err != nil {
		return err
	}
	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO seating_documents (key, body, updated_at) VALUES ($1, $2, now())
			 ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
			key, body,
		); err != nil {
			return fmt.Errorf("upsert document: %w", err)
		}
		if _, err := tx.Exec(ctx, "SELECT pg_notify($1, $2)", Channel, key); err != nil {
			return fmt.Errorf("notify watchers: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Watch holds a dedicated connection listening on Channel. The current row
// is read after LISTEN succeeds, so no change between the two is missed.
func (s *Store) Watch(ctx context.Context, key string, fn func(storage.Push)) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{Channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	push, err := s.read(ctx, key)
	if err != nil {
		return err
	}
	fn(push)

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait for notification: %w", err)
		}
		if n.Payload != key {
			continue
		}
		push, err := s.read(ctx, key)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fn(push)
	}
}

func (s *Store) read(ctx context.Context, key string) (storage.Push, error) {
	var body []byte
	err := s.pool.QueryRow(ctx,
		"SELECT body FROM seating_documents WHERE key = $1",
		key,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.Push{}, nil
	}
	if err != nil {
		return storage.Push{}, fmt.Errorf("read %s: %w", key, err)
	}
	snapshot, ok := storage.Decode(body)
	return storage.Push{Snapshot: snapshot, Exists: ok}, nil
}
