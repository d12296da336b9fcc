package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS tables (
    code TEXT PRIMARY KEY,
    restaurant_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS table_users (
    table_code TEXT REFERENCES tables(code) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    color TEXT NOT NULL,
    ordinal INT NOT NULL,
    PRIMARY KEY (table_code, user_id)
);

CREATE TABLE IF NOT EXISTS table_selections (
    table_code TEXT REFERENCES tables(code) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    dish_ids TEXT[] NOT NULL DEFAULT '{}',
    PRIMARY KEY (table_code, user_id)
);
`

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
