package db

import (
	"context"
	"fmt"

	"github.com/existflow/glow/internal/model"
)

// migrate runs all schema migrations and seeds reference data.
func (db *DB) migrate() error {
	migrations := []string{
		migrationCreateCategories,
		migrationCreateIdentities,
		migrationCreateArchetypes,
		migrationCreateTasks,
		migrationCreateCompletionLogs,
		migrationCreateDayLogs,
	}
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return db.seed()
}

// seed inserts the starter categories and the archetype catalog when
// their tables are empty.
func (db *DB) seed() error {
	ctx := context.Background()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		for _, c := range model.StarterCategories {
			if _, err := db.InsertCategory(ctx, c); err != nil {
				return fmt.Errorf("seed category %q: %w", c.Name, err)
			}
		}
	}

	if err := db.QueryRow(`SELECT COUNT(*) FROM archetypes`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		for _, a := range model.StarterArchetypes {
			if _, err := db.InsertArchetype(ctx, a); err != nil {
				return fmt.Errorf("seed archetype %q: %w", a.Name, err)
			}
		}
	}
	return nil
}

const migrationCreateCategories = `
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    emoji TEXT DEFAULT '',
    created_at TEXT NOT NULL
);
`

const migrationCreateIdentities = `
CREATE TABLE IF NOT EXISTS identities (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    emoji TEXT DEFAULT '',
    created_at TEXT NOT NULL
);
`

const migrationCreateArchetypes = `
CREATE TABLE IF NOT EXISTS archetypes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    emoji TEXT DEFAULT '',
    description TEXT DEFAULT '',
    identities TEXT NOT NULL DEFAULT '[]',
    habits TEXT NOT NULL DEFAULT '[]',
    created_at TEXT NOT NULL
);
`

const migrationCreateTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    category TEXT DEFAULT '',
    completed INTEGER DEFAULT 0,
    page TEXT NOT NULL DEFAULT 'daily',
    weekdays TEXT NOT NULL DEFAULT '[]',
    all_day INTEGER DEFAULT 0,
    scheduled_time TEXT DEFAULT '',
    identity_tags TEXT NOT NULL DEFAULT '[]',
    two_minute_version TEXT DEFAULT '',
    recurrence TEXT NOT NULL DEFAULT '{}',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_page ON tasks(page);
`

const migrationCreateCompletionLogs = `
CREATE TABLE IF NOT EXISTS completion_logs (
    id TEXT PRIMARY KEY,
    task_id TEXT NOT NULL,
    identity_id TEXT DEFAULT '',
    two_minute INTEGER DEFAULT 0,
    friction_reason TEXT DEFAULT '',
    occurred_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_completion_logs_identity ON completion_logs(identity_id);
`

const migrationCreateDayLogs = `
CREATE TABLE IF NOT EXISTS day_logs (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    page TEXT NOT NULL,
    all_completed INTEGER DEFAULT 1,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_day_logs_page_date ON day_logs(page, date);
`
