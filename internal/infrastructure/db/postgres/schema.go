package postgres

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id                   TEXT PRIMARY KEY,
    email                TEXT NOT NULL UNIQUE,
    name                 TEXT NOT NULL DEFAULT '',
    company              TEXT NOT NULL DEFAULT '',
    password_hash        TEXT NOT NULL,
    email_verified       BOOLEAN NOT NULL DEFAULT FALSE,
    verification_code    TEXT,
    verification_expires TIMESTAMPTZ,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the users table when it does not exist yet. Intended
// for dev setups; production schemas are managed out of band.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
