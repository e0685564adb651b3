package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema создаёт все таблицы приложения. Можно вызывать повторно.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS admins (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS players (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tournaments (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    status TEXT NOT NULL DEFAULT 'upcoming' CHECK (status IN ('upcoming', 'active', 'completed')),
    rounds INTEGER NOT NULL DEFAULT 1,
    teams_per_ticket INTEGER NOT NULL DEFAULT 3,
    announcement_date TIMESTAMPTZ,
    created_by INTEGER REFERENCES admins(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tournaments_status ON tournaments(status);

CREATE TABLE IF NOT EXISTS teams (
    id SERIAL PRIMARY KEY,
    tournament_id INTEGER NOT NULL REFERENCES tournaments(id),
    seed_number TEXT NOT NULL,
    team_name TEXT,
    status TEXT NOT NULL DEFAULT 'placeholder' CHECK (status IN ('placeholder', 'confirmed')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (tournament_id, seed_number)
);

-- Очки принимаются для любой команды: существование команды не проверяется
CREATE TABLE IF NOT EXISTS scores (
    id SERIAL PRIMARY KEY,
    tournament_id INTEGER NOT NULL,
    team_id INTEGER NOT NULL,
    round_number INTEGER NOT NULL,
    points DOUBLE PRECISION NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (tournament_id, team_id, round_number)
);

CREATE TABLE IF NOT EXISTS leaderboard_entries (
    id SERIAL PRIMARY KEY,
    tournament_id INTEGER NOT NULL,
    team_id INTEGER NOT NULL,
    total_points DOUBLE PRECISION NOT NULL DEFAULT 0,
    rank INTEGER NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (tournament_id, team_id)
);

CREATE INDEX IF NOT EXISTS idx_leaderboard_entries_rank ON leaderboard_entries(tournament_id, rank);

CREATE TABLE IF NOT EXISTS tickets (
    id SERIAL PRIMARY KEY,
    player_id INTEGER REFERENCES players(id),
    tournament_id INTEGER NOT NULL REFERENCES tournaments(id),
    ticket_number TEXT NOT NULL UNIQUE,
    access_code TEXT NOT NULL,
    team_ids INTEGER[] NOT NULL,
    status TEXT NOT NULL DEFAULT 'paid' CHECK (status IN ('paid', 'free')),
    total_points DOUBLE PRECISION NOT NULL DEFAULT 0,
    is_winner BOOLEAN NOT NULL DEFAULT FALSE,
    payment_ref TEXT UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tickets_tournament_id ON tickets(tournament_id);

CREATE TABLE IF NOT EXISTS prizes (
    id SERIAL PRIMARY KEY,
    tournament_id INTEGER NOT NULL REFERENCES tournaments(id),
    prize_type TEXT NOT NULL,
    amount DOUBLE PRECISION,
    item TEXT,
    winner_ticket_ids INTEGER[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
