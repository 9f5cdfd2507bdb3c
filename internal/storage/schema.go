package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// Key-value substrate for JSON-encoded collections (activities,
		// tips, events, session). Keys are scoped per user, see keys.go.
		`CREATE TABLE IF NOT EXISTS kv_entries (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS user_profiles (
			email TEXT PRIMARY KEY,
			username TEXT,
			full_name TEXT,
			total_xp INTEGER DEFAULT 0,
			events_attended INTEGER DEFAULT 0,
			spaces_explored INTEGER DEFAULT 0,
			events_created INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Each milestone code fires at most once per user, enforced here.
		`CREATE TABLE IF NOT EXISTS user_achievements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL,
			code TEXT NOT NULL,
			achievement_type TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			xp_reward INTEGER NOT NULL,
			earned_at DATETIME NOT NULL,
			UNIQUE(email, code)
		);`,
		`CREATE TABLE IF NOT EXISTS community_activities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL,
			activity_type TEXT NOT NULL,
			activity_name TEXT NOT NULL,
			location TEXT,
			xp_earned INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_user_achievements_email ON user_achievements(email);`,
		`CREATE INDEX IF NOT EXISTS idx_community_activities_email_created_at ON community_activities(email, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
