// Package db opens the Postgres handle backing the snapshot store.
package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open connects through the pgx stdlib driver and verifies the connection
// before handing it out. Pool limits are sized for a single planner process;
// the snapshot store issues one statement at a time.
func Open(databaseURL string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: open postgres: %w", err)
	}

	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("db: verify connection: %w", err)
	}

	return conn, nil
}
