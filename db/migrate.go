package db

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS tournaments (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS players (
	id              SERIAL PRIMARY KEY,
	tournament_id   INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
	name            TEXT NOT NULL,
	full_name       TEXT NOT NULL DEFAULT '',
	contact         TEXT NOT NULL DEFAULT '',
	department      TEXT NOT NULL DEFAULT '',
	register_number TEXT NOT NULL DEFAULT '',
	seed            INTEGER NOT NULL,
	add_score       DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS rounds (
	id            SERIAL PRIMARY KEY,
	tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
	round_number  INTEGER NOT NULL,
	UNIQUE (tournament_id, round_number)
);

CREATE TABLE IF NOT EXISTS matches (
	id           SERIAL PRIMARY KEY,
	round_id     INTEGER NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
	table_number INTEGER NOT NULL,
	player1_id   INTEGER NOT NULL REFERENCES players(id),
	player2_id   INTEGER REFERENCES players(id),
	result       TEXT NOT NULL DEFAULT 'UNPLAYED',
	UNIQUE (round_id, table_number),
	CHECK (result IN ('UNPLAYED', 'PLAYER1', 'PLAYER2', 'DRAW', 'BYE')),
	CHECK ((player2_id IS NULL) = (result = 'BYE'))
);
`

// Migrate creates the schema when it does not exist yet. Safe to run on
// every startup.
func Migrate(ctx context.Context, database *sql.DB) error {
	if _, err := database.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
