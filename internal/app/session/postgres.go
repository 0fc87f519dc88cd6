package session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"eventify/internal/app/db"
)

// PostgresStore keeps the session in one row of the session_slots table.
// Save is a single upsert and Clear a single delete, so both are atomic.
type PostgresStore struct {
	pool      *pgxpool.Pool
	namespace string
	slot      string
}

// NewPostgresStore returns a PostgresStore for namespace/slot on pool.
// The schema is created by db.Open.
func NewPostgresStore(pool *pgxpool.Pool, namespace, slot string) *PostgresStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if slot == "" {
		slot = DefaultSlot
	}
	return &PostgresStore{pool: pool, namespace: namespace, slot: slot}
}

// Save implements Store.
func (p *PostgresStore) Save(ctx context.Context, blob []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO session_slots (namespace, slot, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, slot)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		p.namespace, p.slot, blob)
	if err != nil {
		return fmt.Errorf("save session slot: %w", err)
	}
	return nil
}

// Load implements Store.
func (p *PostgresStore) Load(ctx context.Context) ([]byte, bool, error) {
	var blob []byte
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM session_slots WHERE namespace = $1 AND slot = $2`,
		p.namespace, p.slot).Scan(&blob)
	if db.IsNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		if db.IsUndefinedTable(err) {
			return nil, false, fmt.Errorf("session_slots table missing, migrations not applied: %w", err)
		}
		return nil, false, fmt.Errorf("load session slot: %w", err)
	}
	return blob, true, nil
}

// Clear implements Store.
func (p *PostgresStore) Clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM session_slots WHERE namespace = $1 AND slot = $2`,
		p.namespace, p.slot)
	if err != nil {
		return fmt.Errorf("clear session slot: %w", err)
	}
	return nil
}
