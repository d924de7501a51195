package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// archiveSchema holds finished games. Live games only exist in Redis.
const archiveSchema = `
CREATE TABLE IF NOT EXISTS games (
	id UUID PRIMARY KEY,
	winner TEXT NOT NULL,
	black_score INT NOT NULL,
	white_score INT NOT NULL,
	moves TEXT[] NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// InitPostgres initializes the database connection and ensures the archive
// table exists.
func InitPostgres(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if _, err := db.Exec(archiveSchema); err != nil {
		return nil, fmt.Errorf("error creating archive table: %w", err)
	}

	return db, nil
}
