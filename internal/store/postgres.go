package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inamate/flowdraw/internal/document"
)

const schema = `
CREATE TABLE IF NOT EXISTS diagram_snapshots (
	id         TEXT PRIMARY KEY,
	version    INTEGER NOT NULL DEFAULT 1,
	entities   INTEGER NOT NULL DEFAULT 0,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PGStore keeps one row per document in Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPool connects to databaseURL and verifies the connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// EnsureSchema creates the snapshot table if it is missing.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PGStore) Load(ctx context.Context, docID string) (document.Snapshot, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM diagram_snapshots WHERE id = $1`, docID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Snapshot{}, ErrNotFound
		}
		return document.Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}

	var snap document.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return document.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", docID, err)
	}
	return snap, nil
}

func (s *PGStore) Save(ctx context.Context, docID string, snap document.Snapshot) (Meta, error) {
	docJSON, err := json.Marshal(snap)
	if err != nil {
		return Meta{}, fmt.Errorf("marshal snapshot: %w", err)
	}

	meta := Meta{ID: docID}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO diagram_snapshots (id, entities, document)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET version = diagram_snapshots.version + 1,
		    entities = EXCLUDED.entities,
		    document = EXCLUDED.document,
		    updated_at = now()
		RETURNING version, entities, updated_at`,
		docID, len(snap.Entities), docJSON,
	).Scan(&meta.Version, &meta.Entities, &meta.UpdatedAt)
	if err != nil {
		return Meta{}, fmt.Errorf("save snapshot: %w", err)
	}
	return meta, nil
}

func (s *PGStore) List(ctx context.Context) ([]Meta, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, version, entities, updated_at FROM diagram_snapshots ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Meta
	for rows.Next() {
		var m Meta
		if err := rows.Scan(&m.ID, &m.Version, &m.Entities, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PGStore) Delete(ctx context.Context, docID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM diagram_snapshots WHERE id = $1`, docID)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
