package store

// Schemas run on startup to make sure tables exist. Statements are applied
// one at a time.
var postgresSchema = []string{
	`CREATE SCHEMA IF NOT EXISTS donormatch`,
	`CREATE TABLE IF NOT EXISTS donormatch.victims (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		location      TEXT NOT NULL,
		need_type     TEXT NOT NULL,
		amount_needed BIGINT NOT NULL CHECK (amount_needed >= 0),
		urgency       INTEGER NOT NULL CHECK (urgency >= 0),
		income        BIGINT NOT NULL CHECK (income >= 0),
		has_home      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS donormatch.donors (
		id              BIGSERIAL PRIMARY KEY,
		name            TEXT NOT NULL,
		location        TEXT NOT NULL,
		resource_type   TEXT NOT NULL,
		donation_amount BIGINT NOT NULL CHECK (donation_amount >= 0),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// created_at holds unix microseconds.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS victims (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		location      TEXT NOT NULL,
		need_type     TEXT NOT NULL,
		amount_needed INTEGER NOT NULL CHECK (amount_needed >= 0),
		urgency       INTEGER NOT NULL CHECK (urgency >= 0),
		income        INTEGER NOT NULL CHECK (income >= 0),
		has_home      INTEGER NOT NULL DEFAULT 0,
		created_at    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS donors (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		location        TEXT NOT NULL,
		resource_type   TEXT NOT NULL,
		donation_amount INTEGER NOT NULL CHECK (donation_amount >= 0),
		created_at      INTEGER NOT NULL
	)`,
}
