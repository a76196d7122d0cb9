package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			level INTEGER NOT NULL DEFAULT 1,
			total_xp INTEGER NOT NULL DEFAULT 0,
			missions_completed INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS missions (
			id TEXT PRIMARY KEY,
			quest_id TEXT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			title TEXT NOT NULL,
			description TEXT,
			room TEXT NOT NULL DEFAULT '',

			status TEXT NOT NULL DEFAULT 'pending',
			difficulty TEXT NOT NULL DEFAULT 'easy',
			is_daily INTEGER NOT NULL DEFAULT 0,
			due_date TEXT,
			created_at TEXT NOT NULL,
			completed_at TEXT,
			xp_awarded INTEGER NOT NULL DEFAULT 0,

			target_count INTEGER,
			count_progress INTEGER NOT NULL DEFAULT 0,
			elapsed_seconds INTEGER NOT NULL DEFAULT 0,

			recurrence_pattern TEXT NOT NULL DEFAULT 'none',
			recurrence_interval INTEGER NOT NULL DEFAULT 1,
			recurrence_weekdays TEXT,
			recurrence_day_of_month INTEGER,
			recurrence_end_date TEXT,
			recurrence_max_occurrences INTEGER,
			occurrence_number INTEGER NOT NULL DEFAULT 1,
			parent_mission_id TEXT NULL,
			next_occurrence_id TEXT NULL,

			FOREIGN KEY(quest_id) REFERENCES quests(id) ON DELETE SET NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_missions_quest_id ON missions(quest_id, position);`,
		`CREATE INDEX IF NOT EXISTS idx_missions_status ON missions(status);`,
		`CREATE INDEX IF NOT EXISTS idx_missions_parent ON missions(parent_mission_id);`,
		`CREATE INDEX IF NOT EXISTS idx_missions_next ON missions(next_occurrence_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
