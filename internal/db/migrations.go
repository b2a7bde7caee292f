package db

import (
	"context"
	"fmt"
)

// Both schemas keep text columns NOT NULL with '' defaults so rows scan into
// plain strings. primary_date is the tour start for tours and the pickup
// date otherwise.

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS bookings (
		id                      TEXT PRIMARY KEY,
		type                    TEXT NOT NULL DEFAULT 'single' CHECK(type IN ('single', 'tour', 'outsourced')),
		source                  TEXT NOT NULL DEFAULT 'internal' CHECK(source IN ('internal', 'outsourced')),
		status                  TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'confirmed', 'completed', 'cancelled')),
		primary_date            TEXT NOT NULL DEFAULT '',
		date                    TEXT NOT NULL DEFAULT '',
		time                    TEXT NOT NULL DEFAULT '',
		has_return              INTEGER NOT NULL DEFAULT 0,
		return_date             TEXT NOT NULL DEFAULT '',
		return_time             TEXT NOT NULL DEFAULT '',
		tour_start_date         TEXT NOT NULL DEFAULT '',
		tour_end_date           TEXT NOT NULL DEFAULT '',
		tour_pickup_time        TEXT NOT NULL DEFAULT '',
		tour_return_pickup_time TEXT NOT NULL DEFAULT '',
		driver                  TEXT NOT NULL DEFAULT '',
		driver_id               TEXT NOT NULL DEFAULT '',
		vehicle                 TEXT NOT NULL DEFAULT '',
		vehicle_id              TEXT NOT NULL DEFAULT '',
		partner                 TEXT NOT NULL DEFAULT '',
		partner_id              TEXT NOT NULL DEFAULT '',
		customer_name           TEXT NOT NULL DEFAULT '',
		pickup                  TEXT NOT NULL DEFAULT '',
		dropoff                 TEXT NOT NULL DEFAULT '',
		price                   REAL NOT NULL DEFAULT 0,
		created_at              TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_primary_date ON bookings(primary_date);
	CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status);

	CREATE TABLE IF NOT EXISTS drivers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		phone      TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'available' CHECK(status IN ('available', 'busy', 'offline')),
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vehicles (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		plate      TEXT NOT NULL DEFAULT '',
		seats      INTEGER NOT NULL DEFAULT 0,
		status     TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'inactive', 'maintenance')),
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS partners (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		contact    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'inactive')),
		created_at TEXT NOT NULL
	);
`

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS bookings (
		id                      TEXT PRIMARY KEY,
		type                    TEXT NOT NULL DEFAULT 'single',
		source                  TEXT NOT NULL DEFAULT 'internal',
		status                  TEXT NOT NULL DEFAULT 'pending',
		primary_date            TEXT NOT NULL DEFAULT '',
		date                    TEXT NOT NULL DEFAULT '',
		time                    TEXT NOT NULL DEFAULT '',
		has_return              BOOLEAN NOT NULL DEFAULT FALSE,
		return_date             TEXT NOT NULL DEFAULT '',
		return_time             TEXT NOT NULL DEFAULT '',
		tour_start_date         TEXT NOT NULL DEFAULT '',
		tour_end_date           TEXT NOT NULL DEFAULT '',
		tour_pickup_time        TEXT NOT NULL DEFAULT '',
		tour_return_pickup_time TEXT NOT NULL DEFAULT '',
		driver                  TEXT NOT NULL DEFAULT '',
		driver_id               TEXT NOT NULL DEFAULT '',
		vehicle                 TEXT NOT NULL DEFAULT '',
		vehicle_id              TEXT NOT NULL DEFAULT '',
		partner                 TEXT NOT NULL DEFAULT '',
		partner_id              TEXT NOT NULL DEFAULT '',
		customer_name           TEXT NOT NULL DEFAULT '',
		pickup                  TEXT NOT NULL DEFAULT '',
		dropoff                 TEXT NOT NULL DEFAULT '',
		price                   DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at              TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_primary_date ON bookings(primary_date);
	CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status);

	CREATE TABLE IF NOT EXISTS drivers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		phone      TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'available',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS vehicles (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		plate      TEXT NOT NULL DEFAULT '',
		seats      INTEGER NOT NULL DEFAULT 0,
		status     TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS partners (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		contact    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Migrate creates the tables if they do not exist yet.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}
