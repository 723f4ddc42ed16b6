package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"dispatch-route-planner/internal/ports"
)

// PostgresStore keeps the snapshot as one JSON row keyed by name.
type PostgresStore struct {
	DB  *sql.DB
	Key string
}

func NewPostgresStore(db *sql.DB, key string) (*PostgresStore, error) {
	if db == nil {
		return nil, errors.New("postgres snapshot store: db is nil")
	}
	if key == "" {
		return nil, errors.New("postgres snapshot store: key is empty")
	}
	return &PostgresStore{DB: db, Key: key}, nil
}

// InitSchema creates the snapshot table if missing.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS planner_snapshots (
		name TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create planner_snapshots: %w", err)
	}

	return nil
}

// Load fetches the snapshot row. A missing row or corrupt payload yields an
// empty snapshot, not an error.
func (s *PostgresStore) Load(ctx context.Context) (ports.Snapshot, error) {
	q := `
	SELECT payload
	FROM planner_snapshots
	WHERE name = $1;
	`

	var raw string
	err := s.DB.QueryRowContext(ctx, q, s.Key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.Snapshot{}, nil
	}
	if err != nil {
		return ports.Snapshot{}, fmt.Errorf("snapshot load: query planner_snapshots: %w", err)
	}

	var snap ports.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		log.Printf("snapshot payload unreadable, starting empty: %v", err)
		return ports.Snapshot{}, nil
	}

	return snap, nil
}

// Save upserts the snapshot row.
func (s *PostgresStore) Save(ctx context.Context, snap ports.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot save: marshal: %w", err)
	}

	q := `
	INSERT INTO planner_snapshots (name, payload, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (name) DO UPDATE
	SET payload = EXCLUDED.payload,
		updated_at = EXCLUDED.updated_at;
	`
	if _, err := s.DB.ExecContext(ctx, q, s.Key, string(payload)); err != nil {
		return fmt.Errorf("snapshot save: upsert planner_snapshots: %w", err)
	}

	return nil
}

// Clear deletes the snapshot row.
func (s *PostgresStore) Clear(ctx context.Context) error {
	q := `
	DELETE FROM planner_snapshots
	WHERE name = $1;
	`
	if _, err := s.DB.ExecContext(ctx, q, s.Key); err != nil {
		return fmt.Errorf("snapshot clear: delete planner_snapshots: %w", err)
	}

	return nil
}
