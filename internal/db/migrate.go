package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		name     TEXT NOT NULL CHECK(length(name) <= 100),
		color    TEXT NOT NULL DEFAULT '' CHECK(length(color) <= 20),
		owner_id TEXT NOT NULL CHECK(length(owner_id) <= 450),
		UNIQUE(owner_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL DEFAULT '' CHECK(length(name) <= 200),
		description     TEXT CHECK(description IS NULL OR length(description) <= 1000),
		estimated_hours INTEGER CHECK(estimated_hours IS NULL OR estimated_hours >= 0),
		priority        INTEGER,
		category_id     INTEGER REFERENCES categories(id) ON DELETE SET NULL,
		is_looped       INTEGER CHECK(is_looped IS NULL OR is_looped IN (0, 1)),
		completed_at    TEXT,
		owner_id        TEXT NOT NULL CHECK(length(owner_id) <= 450)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_categories_owner ON categories(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id)`,
}
