package engagement

import (
	"context"
	"fmt"

	"github.com/audiencelab/redditpulse/internal/infrastructure/persistence/database"
)

// created_raw columns deliberately keep the loose legacy representation: a
// TEXT field that may hold epoch seconds or an ISO-8601 string. Normalization
// happens only at scan time, in one place.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS engagement_records (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		reddit_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		subreddit TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL DEFAULT 0,
		reply_count INTEGER NOT NULL DEFAULT 0,
		created_raw TEXT NOT NULL DEFAULT '',
		permalink TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_engagement_user ON engagement_records(user_id)`,
	`CREATE TABLE IF NOT EXISTS archived_comments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		subreddit TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		reply TEXT NOT NULL DEFAULT '',
		source_url TEXT NOT NULL DEFAULT '',
		created_raw TEXT NOT NULL DEFAULT '',
		archived_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_archived_comments_user ON archived_comments(user_id)`,
	`CREATE TABLE IF NOT EXISTS generated_posts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		subreddit TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		post_type TEXT NOT NULL DEFAULT '',
		target_audience TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		created_raw TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_generated_posts_user ON generated_posts(user_id)`,
}

// EnsureSchema creates the engagement tables when they do not exist.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply engagement schema: %w", err)
		}
	}
	return nil
}
