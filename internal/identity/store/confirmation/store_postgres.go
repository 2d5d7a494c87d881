package confirmation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"keyproof/internal/identity/models"
)

// Clock returns the current time.
type Clock func() time.Time

const schema = `
CREATE TABLE IF NOT EXISTS keybase_confirmations (
	identity   TEXT PRIMARY KEY,
	keys       TEXT[] NOT NULL DEFAULT '{}',
	updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore persists confirmation records in PostgreSQL, one row per
// identity.
type PostgresStore struct {
	db    *sql.DB
	clock Clock
}

// PostgresOption configures a PostgresStore instance.
type PostgresOption func(*PostgresStore)

// WithPostgresClock sets the clock function for testability.
func WithPostgresClock(clock Clock) PostgresOption {
	return func(s *PostgresStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewPostgresStore(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{
		db:    db,
		clock: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// EnsureSchema creates the confirmations table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure confirmation schema: %w", err)
	}
	return nil
}

// GetKeys returns the recorded keys for identity, nil when no row exists.
func (s *PostgresStore) GetKeys(ctx context.Context, identity models.Identity) ([]models.Key, error) {
	var raw []string
	err := s.db.QueryRowContext(ctx,
		`SELECT keys FROM keybase_confirmations WHERE identity = $1`,
		string(identity),
	).Scan(pq.Array(&raw))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get confirmation keys: %w", err)
	}
	keys := make([]models.Key, len(raw))
	for i, k := range raw {
		keys[i] = models.Key(k)
	}
	return keys, nil
}

// SetKeys overwrites the record for identity.
func (s *PostgresStore) SetKeys(ctx context.Context, identity models.Identity, keys []models.Key) error {
	raw := make([]string, len(keys))
	for i, k := range keys {
		raw[i] = string(k)
	}
	query := `
		INSERT INTO keybase_confirmations (identity, keys, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (identity) DO UPDATE SET
			keys = EXCLUDED.keys,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, string(identity), pq.Array(raw), s.clock()); err != nil {
		return fmt.Errorf("set confirmation keys: %w", err)
	}
	return nil
}
